package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// RecordMovementRequest represents a request to record a movement.
// Timestamp is optional epoch milliseconds; omitted means "now".
type RecordMovementRequest struct {
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp *int64          `json:"timestamp,omitempty"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *RecordMovementRequest) ToUseCaseInput(accountID int64) usecase.RecordMovementInput {
	input := usecase.RecordMovementInput{
		AccountID: accountID,
		Title:     r.Title,
		Amount:    r.Amount,
	}

	if r.Timestamp != nil {
		t := time.UnixMilli(*r.Timestamp).UTC()
		input.Timestamp = &t
	}

	return input
}

// TransferRequest represents a request to transfer between two accounts.
type TransferRequest struct {
	SourceAccountID      int64           `json:"source_account_id"`
	DestinationAccountID int64           `json:"destination_account_id"`
	Title                string          `json:"title"`
	Amount               decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Title:                r.Title,
		Amount:               r.Amount,
	}
}
