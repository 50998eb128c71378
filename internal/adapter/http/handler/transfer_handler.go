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

type transferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.TransferReceipt, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC transferService
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC transferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create executes a transfer between two accounts. The response body
// always carries the outcome code; failures keep both accounts untouched.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransferErrors.WithLabelValues(string(domain.OutcomeForError(err))).Inc()
		}

		writeJSON(w, mapDomainError(err), dto.TransferErrorFromError(err))

		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCreated.Inc()
		h.metrics.TransferAmount.Observe(req.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromReceipt(receipt))
}
