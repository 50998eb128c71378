package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/adapter/repository/postgres"
	"github.com/willowbank/ledger/internal/domain"
	"github.com/willowbank/ledger/internal/usecase"
	"github.com/willowbank/ledger/tests/testutil"
)

func TestTransferAtomicity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txManager := postgres.NewTxManager(pool)

	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, movementRepo, nil)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	t.Run("success writes both movements and both balances", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccountWithBalance(ctx, "source", decimal.NewFromInt(500))
		dest := testDB.CreateTestAccountWithBalance(ctx, "dest", decimal.NewFromInt(200))

		receipt, err := transferUC.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      source.ID,
			DestinationAccountID: dest.ID,
			Title:                "Rent",
			Amount:               decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sourceMovements, err := movementRepo.ListByAccount(ctx, source.ID, 10, 0)
		if err != nil {
			t.Fatalf("failed to list source movements: %v", err)
		}

		destMovements, err := movementRepo.ListByAccount(ctx, dest.ID, 10, 0)
		if err != nil {
			t.Fatalf("failed to list dest movements: %v", err)
		}

		if len(sourceMovements) != 1 || len(destMovements) != 1 {
			t.Fatalf("expected 1 movement per account, got %d and %d", len(sourceMovements), len(destMovements))
		}

		debit := sourceMovements[0]
		credit := destMovements[0]

		if !debit.Amount.Equal(decimal.NewFromInt(-100)) {
			t.Errorf("expected debit of -100, got %s", debit.Amount)
		}

		if !credit.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected credit of 100, got %s", credit.Amount)
		}

		if !debit.Timestamp.Equal(credit.Timestamp) {
			t.Errorf("expected shared timestamp, got %s and %s", debit.Timestamp, credit.Timestamp)
		}

		for _, m := range []*domain.Movement{debit, credit} {
			if !m.IsTransfer {
				t.Error("expected movement to be flagged as transfer")
			}
			if !strings.HasPrefix(m.Title, domain.TransferTitlePrefix) {
				t.Errorf("expected title prefix, got %q", m.Title)
			}
		}

		if receipt.Debit.ID != debit.ID || receipt.Credit.ID != credit.ID {
			t.Error("expected receipt to reference the stored movements")
		}

		sourceAcc, _ := accountRepo.GetByID(ctx, source.ID)
		destAcc, _ := accountRepo.GetByID(ctx, dest.ID)

		if !sourceAcc.Balance.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected source balance 400, got %s", sourceAcc.Balance)
		}

		if !destAcc.Balance.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected dest balance 300, got %s", destAcc.Balance)
		}
	})

	t.Run("insufficient funds leaves no partial effects", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccountWithBalance(ctx, "source", decimal.NewFromInt(50))
		dest := testDB.CreateTestAccount(ctx, "dest")

		_, err := transferUC.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      source.ID,
			DestinationAccountID: dest.ID,
			Amount:               decimal.NewFromInt(100),
		})

		var insufficient *domain.InsufficientFundsError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientFundsError, got %v", err)
		}

		for _, id := range []int64{source.ID, dest.ID} {
			movements, err := movementRepo.ListByAccount(ctx, id, 10, 0)
			if err != nil {
				t.Fatalf("failed to list movements: %v", err)
			}
			if len(movements) != 0 {
				t.Errorf("expected no movements for account %d, got %d", id, len(movements))
			}
		}

		sourceAcc, _ := accountRepo.GetByID(ctx, source.ID)
		if !sourceAcc.Balance.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected source balance unchanged at 50, got %s", sourceAcc.Balance)
		}

		destAcc, _ := accountRepo.GetByID(ctx, dest.ID)
		if !destAcc.Balance.Equal(decimal.Zero) {
			t.Errorf("expected dest balance unchanged at 0, got %s", destAcc.Balance)
		}
	})

	t.Run("ledger stays consistent after transfers", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		a := testDB.CreateTestAccount(ctx, "a")
		b := testDB.CreateTestAccount(ctx, "b")

		movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil)

		if _, err := movementUC.RecordMovement(ctx, usecase.RecordMovementInput{
			AccountID: a.ID,
			Title:     "Salary",
			Amount:    decimal.NewFromInt(300),
		}); err != nil {
			t.Fatalf("failed to record movement: %v", err)
		}

		if _, err := transferUC.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      a.ID,
			DestinationAccountID: b.ID,
			Title:                "Split",
			Amount:               decimal.NewFromInt(120),
		}); err != nil {
			t.Fatalf("failed to transfer: %v", err)
		}

		consistent, mismatches, err := ledgerUC.CheckConsistency(ctx)
		if err != nil {
			t.Fatalf("failed to check consistency: %v", err)
		}

		if !consistent {
			t.Errorf("expected consistent ledger, got %d mismatches", len(mismatches))
		}
	})
}

func TestMovementDeletionReversesBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txManager := postgres.NewTxManager(pool)

	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil)

	testDB.TruncateAll(ctx)

	account := testDB.CreateTestAccount(ctx, "holder")

	movement, err := movementUC.RecordMovement(ctx, usecase.RecordMovementInput{
		AccountID: account.ID,
		Title:     "Refund",
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("failed to record movement: %v", err)
	}

	if err := movementUC.DeleteMovement(ctx, movement.ID, account.ID); err != nil {
		t.Fatalf("failed to delete movement: %v", err)
	}

	acc, err := accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}

	if !acc.Balance.Equal(decimal.Zero) {
		t.Errorf("expected balance back at 0 after deletion, got %s", acc.Balance)
	}

	movements, err := movementRepo.ListByAccount(ctx, account.ID, 10, 0)
	if err != nil {
		t.Fatalf("failed to list movements: %v", err)
	}

	if len(movements) != 0 {
		t.Errorf("expected no movements after deletion, got %d", len(movements))
	}
}
