package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^FW-\d{13}-[A-Z0-9]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := FallbackOrderNumber()
		assert.Regexp(t, re, n)
		seen[n] = true
	}
	assert.Len(t, seen, 50, "fallback numbers should not repeat")
}
