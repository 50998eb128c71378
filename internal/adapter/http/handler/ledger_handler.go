package handler

import (
	"context"
	"net/http"

	"github.com/willowbank/ledger/internal/adapter/http/dto"
	"github.com/willowbank/ledger/internal/domain"
)

type ledgerService interface {
	CheckConsistency(ctx context.Context) (bool, []*domain.BalanceMismatch, error)
}

// LedgerHandler handles ledger-wide HTTP requests.
type LedgerHandler struct {
	ledgerUC ledgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC ledgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Consistency reports whether every account balance matches the sum of
// its movements.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	consistent, mismatches, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	status := http.StatusOK
	if !consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromDomain(consistent, mismatches))
}
