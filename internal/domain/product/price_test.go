package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"comma decimal", "55,99", "55.99"},
		{"thousands and decimal", "1.234,56", "1234.56"},
		{"integer", "100", "100"},
		{"negative", "-5,50", "-5.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrice(tc.input)
			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

// A dot-decimal value typed in the wrong locale loses its decimal
// point: "55.99" becomes 5599. This pins the current behavior, it is
// not a guaranteed contract.
func TestParsePriceStripsDotsUnconditionally(t *testing.T) {
	got, err := ParsePrice("55.99")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(5599)), "got %s", got)
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "abc", "12,34,56", "1 234,56"} {
		_, err := ParsePrice(input)
		require.ErrorIs(t, err, ErrInvalidPriceFormat, "input %q", input)
	}
}

func TestParsePriceDefault(t *testing.T) {
	got, err := ParsePriceDefault("")
	require.NoError(t, err)
	require.True(t, got.IsZero())

	got, err = ParsePriceDefault("55,99")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("55.99")))

	_, err = ParsePriceDefault("abc")
	require.ErrorIs(t, err, ErrInvalidPriceFormat)
}
