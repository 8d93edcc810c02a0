package utils

import (
	"math"
	"regexp"

	"hearthside_back_end/internal/config"
)

const earthRadiusMiles = 3959

var zipCodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// CalculateDistance returns the great-circle distance between two points in
// miles, rounded to two decimals. Identical coordinates short-circuit to an
// exact 0 so floating point noise never shows a phantom distance.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMiles*c*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// CalculateDeliveryFee prices a delivery run by distance: the base fee covers
// the first 10 miles, distance beyond that is billed at the per-mile rate,
// fractional miles included.
func CalculateDeliveryFee(distanceMiles float64) float64 {
	base := config.BaseDeliveryFee()
	if distanceMiles <= 10 {
		return base
	}
	return base + (distanceMiles-10)*config.PerMileFee()
}

// IsDeliveryAvailable reports whether the address falls inside our delivery
// radius.
func IsDeliveryAvailable(distanceMiles float64) bool {
	return distanceMiles <= config.MaxDeliveryRadiusMiles()
}

// IsValidZipCode accepts 5-digit and ZIP+4 formats.
func IsValidZipCode(zip string) bool {
	return zipCodeRe.MatchString(zip)
}
