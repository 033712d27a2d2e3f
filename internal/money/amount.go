package money

import (
	"fmt"

	"duka/manager/internal/model"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a NUMERIC(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Check rejects amounts with fractions of a cent or beyond MaxAmount, so both stores keep identical values.
func Check(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s cannot have more than 2 decimal places", model.ErrInvalidInput, field)
	}
	if amount.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s cannot exceed %s", model.ErrInvalidInput, field, MaxAmount.StringFixed(2))
	}
	return nil
}
