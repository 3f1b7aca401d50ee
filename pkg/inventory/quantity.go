package inventory

import (
	"strconv"
	"strings"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
)

// ResolveQuantity translates a supplier quantity code into a stock count.
//
//	">10"      -> 100
//	"1"        -> 0 (a lone unit is held back)
//	otherwise  -> the integer value, negatives clamped to 0
//
// Surrounding whitespace is ignored. A value that is not an integer returns
// a *errors.ParseError with Format "quantity".
func ResolveQuantity(raw string) (int, error) {
	code := strings.TrimSpace(raw)
	switch code {
	case constants.QuantityManyCode:
		return constants.QuantityManyValue, nil
	case constants.QuantitySingleCode:
		return 0, nil
	}

	if code == "" {
		return 0, errors.NewParseError("quantity", raw, "empty quantity", nil)
	}

	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, errors.NewParseError("quantity", raw, "not an integer", err)
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}
