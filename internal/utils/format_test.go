package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$9.99", FormatCurrency(9.99))
	assert.Equal(t, "$1,234.56", FormatCurrency(1234.56))
	assert.Equal(t, "$1,234,567.80", FormatCurrency(1234567.8))
	assert.Equal(t, "-$25.00", FormatCurrency(-25))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "January 15, 2024", FormatDate(d))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "seasoned-oak-full-cord", Slugify("Seasoned Oak — Full Cord"))
	assert.Equal(t, "birch-bundle", Slugify("  Birch Bundle!  "))
	assert.Equal(t, "kiln-dried-2-0", Slugify("Kiln Dried 2.0"))
}
