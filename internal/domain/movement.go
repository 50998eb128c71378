package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tags a movement as a credit or a debit.
type MovementKind string

const (
	KindCredit MovementKind = "CREDIT"
	KindDebit  MovementKind = "DEBIT"
)

// Movement is a single ledger entry against one account. A positive
// amount credits the account, a negative amount debits it. Movements
// are immutable once written.
type Movement struct {
	ID         int64
	AccountID  int64
	Title      string
	Amount     decimal.Decimal
	Timestamp  time.Time
	IsTransfer bool
}

// Kind derives the movement tag from the sign of the amount.
// A zero amount counts as a debit; only strictly positive amounts are credits.
func (m *Movement) Kind() MovementKind {
	if m.Amount.IsPositive() {
		return KindCredit
	}
	return KindDebit
}
