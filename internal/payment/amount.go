package payment

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"cakeries-backend/internal/apperr"
)

// MaxMinorUnits is the largest single charge the card gateway accepts
// (999,999.99 in a two-decimal currency).
const MaxMinorUnits int64 = 99_999_999

// ToMinorUnits converts a price in major units to integer cents, truncating
// toward zero: 19.999 becomes 1999 and 0.29 becomes 29.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: totalPrice must be a positive amount", apperr.ErrValidation)
	}
	cents := decimal.NewFromFloat(price).Shift(2).Truncate(0)
	if cents.LessThan(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%w: totalPrice is below one minor unit", apperr.ErrValidation)
	}
	if cents.GreaterThan(decimal.NewFromInt(MaxMinorUnits)) {
		return 0, fmt.Errorf("%w: totalPrice exceeds the maximum charge", apperr.ErrValidation)
	}
	return cents.IntPart(), nil
}
