package listing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Sheet cells carry currency symbols, arrows and separators around the
// actual value: "₹1,234", "↑120", "-5%", "—".
var (
	gmpJunkRe  = regexp.MustCompile(`[,\s₹$%↑↓⬆⬇▲▼]`)
	gmpValueRe = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?`)
)

// ParseGMP extracts a signed numeric premium from a free-text GMP cell.
// It returns nil when the cell holds no digits at all (dashes, placeholders,
// a bare sign). It never fails on any input.
func ParseGMP(raw string) *decimal.Decimal {
	cleaned := gmpJunkRe.ReplaceAllString(strings.TrimSpace(raw), "")
	match := gmpValueRe.FindString(cleaned)
	if match == "" {
		return nil
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return nil
	}
	return &d
}
