package domain

import "github.com/shopspring/decimal"

// BalanceMismatch reports an account whose cached balance disagrees with
// the sum of its movements.
type BalanceMismatch struct {
	AccountID   int64
	Balance     decimal.Decimal
	MovementSum decimal.Decimal
}
