package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference points used throughout: New York City and Los Angeles.
const (
	nycLat = 40.7128
	nycLng = -74.0060
	laLat  = 34.0522
	laLng  = -118.2437
)

func TestCalculateDistanceIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, CalculateDistance(nycLat, nycLng, nycLat, nycLng))
}

func TestCalculateDistanceIsSymmetric(t *testing.T) {
	there := CalculateDistance(nycLat, nycLng, laLat, laLng)
	back := CalculateDistance(laLat, laLng, nycLat, nycLng)
	assert.Equal(t, there, back)
}

func TestCalculateDistanceNYCToLA(t *testing.T) {
	d := CalculateDistance(nycLat, nycLng, laLat, laLng)
	assert.InDelta(t, 2451, d, 5)
}

func TestDeliveryFeeBaseWithinTenMiles(t *testing.T) {
	assert.Equal(t, 15.0, CalculateDeliveryFee(0))
	assert.Equal(t, 15.0, CalculateDeliveryFee(5.5))
	assert.Equal(t, 15.0, CalculateDeliveryFee(10))
}

func TestDeliveryFeeGrowsBeyondTenMiles(t *testing.T) {
	assert.InDelta(t, 15.2, CalculateDeliveryFee(10.1), 1e-9)
	assert.Equal(t, 25.0, CalculateDeliveryFee(15))
	assert.Equal(t, 95.0, CalculateDeliveryFee(50))
}

func TestDeliveryFeeBillsFractionalMiles(t *testing.T) {
	assert.Equal(t, 20.0, CalculateDeliveryFee(12.5))
}

func TestDeliveryFeeIsMonotone(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 60; d += 0.7 {
		fee := CalculateDeliveryFee(d)
		assert.GreaterOrEqual(t, fee, prev, "fee dropped at %.1f miles", d)
		prev = fee
	}
}

func TestIsDeliveryAvailable(t *testing.T) {
	assert.True(t, IsDeliveryAvailable(50))
	assert.False(t, IsDeliveryAvailable(50.01))
}

func TestIsValidZipCode(t *testing.T) {
	assert.True(t, IsValidZipCode("12345"))
	assert.True(t, IsValidZipCode("12345-6789"))
	assert.False(t, IsValidZipCode("1234"))
	assert.False(t, IsValidZipCode("12345-"))
	assert.False(t, IsValidZipCode("ABCDE"))
}
