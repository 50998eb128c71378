package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/willowbank/ledger/internal/domain"
	"github.com/willowbank/ledger/internal/usecase"
	"github.com/willowbank/ledger/internal/usecase/mocks"
)

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name        string
		input       func(source, destination *domain.Account) usecase.TransferInput
		seedSource  decimal.Decimal
		setupMocks  func(*mocks.MockAccountRepository, *mocks.MockMovementRepository)
		wantErr     error
		wantOutcome domain.TransferOutcome
	}{
		{
			name:       "successful transfer",
			seedSource: decimal.NewFromInt(500),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: destination.ID,
					Amount:               decimal.NewFromInt(100),
				}
			},
			wantOutcome: domain.OutcomeSuccess,
		},
		{
			name:       "insufficient funds",
			seedSource: decimal.NewFromInt(50),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: destination.ID,
					Amount:               decimal.NewFromInt(100),
				}
			},
			wantErr:     &domain.InsufficientFundsError{},
			wantOutcome: domain.OutcomeInsufficientFunds,
		},
		{
			name:       "same account",
			seedSource: decimal.NewFromInt(500),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: source.ID,
					Amount:               decimal.NewFromInt(100),
				}
			},
			wantErr:     domain.ErrSameAccount,
			wantOutcome: domain.OutcomeSameAccount,
		},
		{
			name:       "non-positive amount",
			seedSource: decimal.NewFromInt(500),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: destination.ID,
					Amount:               decimal.NewFromInt(-5),
				}
			},
			wantErr:     domain.ErrInvalidAmount,
			wantOutcome: domain.OutcomeInvalidAmount,
		},
		{
			name:       "destination missing",
			seedSource: decimal.NewFromInt(500),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: 999,
					Amount:               decimal.NewFromInt(100),
				}
			},
			wantErr:     domain.ErrAccountNotFound,
			wantOutcome: domain.OutcomeAccountNotFound,
		},
		{
			// Funds are checked before destination presence, so a short
			// balance wins over a missing destination.
			name:       "insufficient funds with missing destination",
			seedSource: decimal.NewFromInt(50),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: 999,
					Amount:               decimal.NewFromInt(100),
				}
			},
			wantErr:     &domain.InsufficientFundsError{},
			wantOutcome: domain.OutcomeInsufficientFunds,
		},
		{
			name:       "storage failure",
			seedSource: decimal.NewFromInt(500),
			input: func(source, destination *domain.Account) usecase.TransferInput {
				return usecase.TransferInput{
					SourceAccountID:      source.ID,
					DestinationAccountID: destination.ID,
					Amount:               decimal.NewFromInt(100),
				}
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, mvRepo *mocks.MockMovementRepository) {
				mvRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
					return errors.New("connection reset")
				}
			},
			wantErr:     errors.New("connection reset"),
			wantOutcome: domain.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			mvRepo := mocks.NewMockMovementRepository()
			txMgr := mocks.NewMockTransactionManager()

			source := accRepo.Seed(tt.seedSource)
			destination := accRepo.Seed(decimal.NewFromInt(200))

			if tt.setupMocks != nil {
				tt.setupMocks(accRepo, mvRepo)
			}

			uc := usecase.NewTransferUseCase(txMgr, accRepo, mvRepo, nil)

			receipt, err := uc.Transfer(context.Background(), tt.input(source, destination))

			if got := domain.OutcomeForError(err); got != tt.wantOutcome {
				t.Errorf("expected outcome %s, got %s (err=%v)", tt.wantOutcome, got, err)
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if receipt == nil {
					t.Fatal("expected receipt")
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}

			tx := txMgr.LastTransaction()
			if tx != nil && tx.CommitCalled {
				t.Error("expected failed transfer not to commit")
			}
		})
	}
}

func TestTransferUseCase_TransferWritesBothMovements(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accRepo := mocks.NewMockAccountRepository()
	mvRepo := mocks.NewMockMovementRepository()
	txMgr := mocks.NewMockTransactionManager()

	source := accRepo.Seed(decimal.NewFromInt(500))
	destination := accRepo.Seed(decimal.NewFromInt(200))

	notifier := mocks.NewMockBalanceNotifier(ctrl)
	notifier.EXPECT().BalanceChanged(gomock.Any(), source.ID).Return(nil)

	uc := usecase.NewTransferUseCase(txMgr, accRepo, mvRepo, notifier)

	receipt, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Title:                "Dinner split",
		Amount:               decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !receipt.Debit.Amount.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected debit of -100, got %s", receipt.Debit.Amount)
	}

	if !receipt.Credit.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected credit of 100, got %s", receipt.Credit.Amount)
	}

	if !receipt.Debit.Timestamp.Equal(receipt.Credit.Timestamp) {
		t.Error("expected both movements to share a timestamp")
	}

	for _, m := range []*domain.Movement{receipt.Debit, receipt.Credit} {
		if !m.IsTransfer {
			t.Error("expected movement to be flagged as transfer")
		}
		if !strings.HasPrefix(m.Title, domain.TransferTitlePrefix) {
			t.Errorf("expected title prefix, got %q", m.Title)
		}
	}

	updatedSource, _ := accRepo.GetByID(context.Background(), source.ID)
	if !updatedSource.Balance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected source balance 400, got %s", updatedSource.Balance)
	}

	updatedDestination, _ := accRepo.GetByID(context.Background(), destination.ID)
	if !updatedDestination.Balance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected destination balance 300, got %s", updatedDestination.Balance)
	}

	tx := txMgr.LastTransaction()
	if tx == nil || !tx.CommitCalled {
		t.Error("expected transaction to be committed")
	}
}

func TestTransferUseCase_InsufficientFundsCarriesBalance(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	mvRepo := mocks.NewMockMovementRepository()
	txMgr := mocks.NewMockTransactionManager()

	source := accRepo.Seed(decimal.NewFromInt(50))
	destination := accRepo.Seed(decimal.Zero)

	uc := usecase.NewTransferUseCase(txMgr, accRepo, mvRepo, nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Amount:               decimal.NewFromInt(100),
	})

	var insufficient *domain.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}

	if !insufficient.Balance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected balance 50 in error, got %s", insufficient.Balance)
	}

	if !insufficient.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected amount 100 in error, got %s", insufficient.Amount)
	}

	// No partial writes on the failed path.
	movements, _ := mvRepo.ListByAccount(context.Background(), source.ID, 100, 0)
	if len(movements) != 0 {
		t.Errorf("expected no movements written, got %d", len(movements))
	}
}

func TestTransferUseCase_UsesRetrier(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	mvRepo := mocks.NewMockMovementRepository()
	txMgr := mocks.NewMockTransactionManager()

	source := accRepo.Seed(decimal.NewFromInt(500))
	destination := accRepo.Seed(decimal.Zero)

	retried := false
	retrier := mocks.NewMockRetrier()
	retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		retried = true
		return operation()
	}

	uc := usecase.NewTransferUseCase(txMgr, accRepo, mvRepo, nil).WithRetrier(retrier)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Amount:               decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !retried {
		t.Error("expected retrier to wrap the transfer")
	}
}

func TestTransferUseCase_ValidationSkipsStorage(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	mvRepo := mocks.NewMockMovementRepository()
	txMgr := mocks.NewMockTransactionManager()

	began := false
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		began = true
		return &mocks.MockTransaction{}, nil
	}

	uc := usecase.NewTransferUseCase(txMgr, accRepo, mvRepo, nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceAccountID:      1,
		DestinationAccountID: 1,
		Amount:               decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}

	if began {
		t.Error("expected no transaction for a validation failure")
	}
}
