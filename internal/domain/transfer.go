package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TransferTitlePrefix marks the two movements produced by a transfer as linked.
const TransferTitlePrefix = "Transfer: "

// Transfer is a logical unit of work moving amount from one account to
// another. It is not persisted itself; applying it produces exactly two
// movements sharing a timestamp.
type Transfer struct {
	SourceAccountID      int64
	DestinationAccountID int64
	Title                string
	Amount               decimal.Decimal
}

// Validate rejects transfers that can be refused without touching storage.
func (t *Transfer) Validate() error {
	if t.SourceAccountID == t.DestinationAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// TransferReceipt holds the two movements a successful transfer produced.
type TransferReceipt struct {
	Debit  *Movement
	Credit *Movement
}

// TransferOutcome is the closed set of results a transfer can produce.
type TransferOutcome string

const (
	OutcomeSuccess           TransferOutcome = "SUCCESS"
	OutcomeInsufficientFunds TransferOutcome = "INSUFFICIENT_FUNDS"
	OutcomeInvalidAmount     TransferOutcome = "INVALID_AMOUNT"
	OutcomeAccountNotFound   TransferOutcome = "ACCOUNT_NOT_FOUND"
	OutcomeSameAccount       TransferOutcome = "SAME_ACCOUNT"
	OutcomeError             TransferOutcome = "ERROR"
)

// OutcomeForError maps a transfer error to its outcome code. A nil error
// maps to OutcomeSuccess; anything outside the known set is OutcomeError.
func OutcomeForError(err error) TransferOutcome {
	var insufficient *InsufficientFundsError

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &insufficient):
		return OutcomeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, ErrAccountNotFound):
		return OutcomeAccountNotFound
	case errors.Is(err, ErrSameAccount):
		return OutcomeSameAccount
	default:
		return OutcomeError
	}
}
