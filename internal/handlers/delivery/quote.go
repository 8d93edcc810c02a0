// Package delivery exposes the storefront's delivery estimator.
package delivery

import (
	"net/http"
	"os"
	"strconv"

	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func yardCoordinates() (float64, float64) {
	lat, err1 := strconv.ParseFloat(os.Getenv("YARD_LATITUDE"), 64)
	lng, err2 := strconv.ParseFloat(os.Getenv("YARD_LONGITUDE"), 64)
	if err1 != nil || err2 != nil {
		// The yard in Harrisville, NY.
		return 44.1534, -75.3210
	}
	return lat, lng
}

//
// 🚚 GET /api/delivery/quote?lat=&lng=
//
// Distance-based estimate for the storefront map widget. Checkout itself
// charges the flat fee; this endpoint only answers "roughly what would a
// dedicated run cost, and are you in range".
func QuoteDelivery(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	yardLat, yardLng := yardCoordinates()
	distance := utils.CalculateDistance(yardLat, yardLng, lat, lng)
	available := utils.IsDeliveryAvailable(distance)

	resp := gin.H{
		"distance_miles": distance,
		"available":      available,
	}
	if available {
		resp["estimated_fee"] = utils.CalculateDeliveryFee(distance)
	} else {
		resp["message"] = "Sorry, that address is outside our delivery area"
	}
	c.JSON(http.StatusOK, resp)
}
