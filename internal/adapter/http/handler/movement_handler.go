package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/willowbank/ledger/internal/adapter/http/dto"
	"github.com/willowbank/ledger/internal/domain"
	"github.com/willowbank/ledger/internal/infrastructure/metrics"
	"github.com/willowbank/ledger/internal/usecase"
)

type movementService interface {
	RecordMovement(ctx context.Context, input usecase.RecordMovementInput) (*domain.Movement, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
	DeleteMovement(ctx context.Context, movementID, accountID int64) error
	ClearAccountMovements(ctx context.Context, accountID int64) error
}

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	movementUC movementService
	metrics    *metrics.Metrics
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC movementService, m *metrics.Metrics) *MovementHandler {
	return &MovementHandler{movementUC: movementUC, metrics: m}
}

// Create records a movement for an account.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.RecordMovement(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record movement", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.MovementsRecorded.Inc()
		h.metrics.MovementAmount.Observe(movement.Amount.Abs().InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// ListByAccount lists movements for an account, most recent first.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// Delete removes one movement and reverses its balance effect.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	movementID, err := parseIDParam(r, "movementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movement ID", err.Error())
		return
	}

	if err := h.movementUC.DeleteMovement(r.Context(), movementID, accountID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete movement", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.MovementsDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear removes all movements for an account and resets its balance.
func (h *MovementHandler) Clear(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	if err := h.movementUC.ClearAccountMovements(r.Context(), accountID); err != nil {
		writeError(w, mapDomainError(err), "failed to clear movements", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
