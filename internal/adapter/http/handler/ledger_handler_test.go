package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/adapter/http/dto"
	"github.com/willowbank/ledger/internal/domain"
)

type ledgerServiceStub struct {
	checkFn func(ctx context.Context) (bool, []*domain.BalanceMismatch, error)
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) (bool, []*domain.BalanceMismatch, error) {
	return s.checkFn(ctx)
}

func TestLedgerHandler_Consistency_Clean(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		checkFn: func(ctx context.Context) (bool, []*domain.BalanceMismatch, error) {
			return true, nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil)
	rec := httptest.NewRecorder()

	h.Consistency(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ConsistencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Consistent {
		t.Fatal("expected consistent ledger")
	}
}

func TestLedgerHandler_Consistency_Drift(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		checkFn: func(ctx context.Context) (bool, []*domain.BalanceMismatch, error) {
			return false, []*domain.BalanceMismatch{
				{AccountID: 3, Balance: decimal.NewFromInt(10), MovementSum: decimal.NewFromInt(20)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil)
	rec := httptest.NewRecorder()

	h.Consistency(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp dto.ConsistencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Consistent || len(resp.Mismatches) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
