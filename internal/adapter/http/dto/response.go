package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// MovementResponse represents a movement in API responses.
// Timestamp is epoch milliseconds.
type MovementResponse struct {
	ID         int64               `json:"id"`
	AccountID  int64               `json:"account_id"`
	Title      string              `json:"title"`
	Amount     decimal.Decimal     `json:"amount"`
	Timestamp  int64               `json:"timestamp"`
	Kind       domain.MovementKind `json:"kind"`
	IsTransfer bool                `json:"is_transfer"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:         m.ID,
		AccountID:  m.AccountID,
		Title:      m.Title,
		Amount:     m.Amount,
		Timestamp:  m.Timestamp.UnixMilli(),
		Kind:       m.Kind(),
		IsTransfer: m.IsTransfer,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// TransferResponse represents a successful transfer in API responses.
type TransferResponse struct {
	Outcome domain.TransferOutcome `json:"outcome"`
	Debit   *MovementResponse      `json:"debit"`
	Credit  *MovementResponse      `json:"credit"`
}

// TransferFromReceipt converts a transfer receipt to a response.
func TransferFromReceipt(r *domain.TransferReceipt) *TransferResponse {
	return &TransferResponse{
		Outcome: domain.OutcomeSuccess,
		Debit:   MovementFromDomain(r.Debit),
		Credit:  MovementFromDomain(r.Credit),
	}
}

// TransferErrorResponse represents a failed transfer. Balance and Amount
// are set only for the insufficient-funds outcome.
type TransferErrorResponse struct {
	Outcome domain.TransferOutcome `json:"outcome"`
	Error   string                 `json:"error"`
	Balance *decimal.Decimal       `json:"balance,omitempty"`
	Amount  *decimal.Decimal       `json:"amount,omitempty"`
}

// TransferErrorFromError converts a transfer error to a response.
func TransferErrorFromError(err error) *TransferErrorResponse {
	resp := &TransferErrorResponse{
		Outcome: domain.OutcomeForError(err),
		Error:   err.Error(),
	}

	var insufficient *domain.InsufficientFundsError
	if errors.As(err, &insufficient) {
		resp.Balance = &insufficient.Balance
		resp.Amount = &insufficient.Amount
	}

	return resp
}

// MismatchResponse represents a balance mismatch in API responses.
type MismatchResponse struct {
	AccountID   int64           `json:"account_id"`
	Balance     decimal.Decimal `json:"balance"`
	MovementSum decimal.Decimal `json:"movement_sum"`
}

// ConsistencyResponse represents the result of a consistency audit.
type ConsistencyResponse struct {
	Consistent bool                `json:"consistent"`
	Mismatches []*MismatchResponse `json:"mismatches,omitempty"`
}

// ConsistencyFromDomain converts an audit result to a response.
func ConsistencyFromDomain(consistent bool, mismatches []*domain.BalanceMismatch) *ConsistencyResponse {
	resp := &ConsistencyResponse{Consistent: consistent}
	for _, m := range mismatches {
		resp.Mismatches = append(resp.Mismatches, &MismatchResponse{
			AccountID:   m.AccountID,
			Balance:     m.Balance,
			MovementSum: m.MovementSum,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
