package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, half away from zero. Every stored
// monetary figure goes through it at the point it is computed.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseAmount parses a cell amount leniently: surrounding space is trimmed
// and a comma is accepted as the decimal separator. Anything that is still
// not a number yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
