package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found — falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// envFloat reads a float from the environment with a fallback default.
func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("⚠️ Invalid value for %s (%q), using default %.2f", key, os.Getenv(key), def)
	}
	return def
}

// FlatDeliveryFee is the single fee applied to every delivery order at
// checkout. Pickup orders pay nothing.
func FlatDeliveryFee() float64 {
	return envFloat("FLAT_DELIVERY_FEE", 25)
}

// BaseDeliveryFee is the tiered-policy fee for distances up to 10 miles.
func BaseDeliveryFee() float64 {
	return envFloat("BASE_DELIVERY_FEE", 15)
}

// PerMileFee applies to every mile beyond the 10-mile base tier.
func PerMileFee() float64 {
	return envFloat("PER_MILE_FEE", 2)
}

// MaxDeliveryRadiusMiles is the cutoff beyond which delivery is refused.
func MaxDeliveryRadiusMiles() float64 {
	return envFloat("MAX_DELIVERY_RADIUS_MILES", 50)
}
