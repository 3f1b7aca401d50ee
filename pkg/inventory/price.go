package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/stocksync/pkg/errors"
)

// NormalizePrice reduces a supplier price such as "5'990.00 руб." to its
// integer digits ("5990"). Everything from the first '.' on is dropped and
// the remaining non-digits are stripped. A price without digits yields "".
func NormalizePrice(raw string) string {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// ParsePrice normalizes raw and parses it as a decimal.
// An unusable price returns a *errors.ParseError.
func ParsePrice(raw string) (decimal.Decimal, error) {
	normalized := NormalizePrice(raw)
	if normalized == "" {
		return decimal.Zero, errors.NewParseError("price", raw, "no digits in price", nil)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, errors.NewParseError("price", raw, "invalid price", err)
	}
	return d, nil
}
