package chat

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errMalformedAmount   = errors.New("malformed amount")
	errNonPositiveAmount = errors.New("amount must be positive")
)

// parseAmount parses a user-entered amount like "50000", "5.50" or "5,50".
// The amount must be strictly positive.
func parseAmount(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, errMalformedAmount
	}

	input = strings.ReplaceAll(input, ",", ".")
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, errMalformedAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errNonPositiveAmount
	}

	return amount, nil
}
