package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a locale-formatted price string into an exact
// decimal. Dots are thousands separators and are stripped before the
// comma becomes the decimal point: "1.234,56" parses to 1234.56.
// The stripping is unconditional, so "55.99" parses to 5599 — a value
// typed in the wrong locale is taken at face value. Pinned by tests
// as current behavior.
func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidPriceFormat
	}
	return d, nil
}

// ParsePriceDefault is ParsePrice with an empty input mapping to 0.00
// instead of an error, for forms where the price field is optional.
func ParsePriceDefault(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParsePrice(s)
}
