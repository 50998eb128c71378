package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
)

func TestTransferValidate(t *testing.T) {
	tests := []struct {
		name     string
		transfer domain.Transfer
		wantErr  error
	}{
		{
			name: "valid transfer",
			transfer: domain.Transfer{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               decimal.NewFromInt(100),
			},
		},
		{
			name: "same account",
			transfer: domain.Transfer{
				SourceAccountID:      1,
				DestinationAccountID: 1,
				Amount:               decimal.NewFromInt(100),
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name: "zero amount",
			transfer: domain.Transfer{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			transfer: domain.Transfer{
				SourceAccountID:      1,
				DestinationAccountID: 2,
				Amount:               decimal.NewFromInt(-100),
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transfer.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOutcomeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.TransferOutcome
	}{
		{"nil error is success", nil, domain.OutcomeSuccess},
		{
			"insufficient funds",
			&domain.InsufficientFundsError{
				Balance: decimal.NewFromInt(50),
				Amount:  decimal.NewFromInt(100),
			},
			domain.OutcomeInsufficientFunds,
		},
		{"invalid amount", domain.ErrInvalidAmount, domain.OutcomeInvalidAmount},
		{"account not found", domain.ErrAccountNotFound, domain.OutcomeAccountNotFound},
		{"same account", domain.ErrSameAccount, domain.OutcomeSameAccount},
		{"unknown error", errors.New("connection refused"), domain.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.OutcomeForError(tt.err); got != tt.want {
				t.Errorf("expected outcome %s, got %s", tt.want, got)
			}
		})
	}
}
