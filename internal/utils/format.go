package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimDashRe = regexp.MustCompile(`^-+|-+$`)
)

// FormatCurrency renders a dollar amount with thousands separators, e.g.
// 1234.5 → "$1,234.50".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders timestamps the way the storefront shows them, e.g.
// "January 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Slugify turns a product or category name into a URL slug.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugInvalidRe.ReplaceAllString(s, "-")
	s = slugTrimDashRe.ReplaceAllString(s, "")
	return s
}
