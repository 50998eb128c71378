package usecase

import (
	"context"

	"github.com/willowbank/ledger/internal/domain"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// CheckConsistency verifies that every account's cached balance equals
// the sum of its movements, and reports the accounts that drifted.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, []*domain.BalanceMismatch, error) {
	mismatches, err := uc.ledgerRepo.FindBalanceMismatches(ctx)
	if err != nil {
		return false, nil, err
	}

	return len(mismatches) == 0, mismatches, nil
}
