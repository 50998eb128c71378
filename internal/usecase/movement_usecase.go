package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
)

// MovementUseCase handles movement business logic: recording entries,
// listing them, and removing them with the matching balance adjustment.
type MovementUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	notifier     BalanceNotifier
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	notifier BalanceNotifier,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		notifier:     notifier,
	}
}

// RecordMovementInput represents input for recording a movement.
// Timestamp is optional; callers may backdate an entry.
type RecordMovementInput struct {
	Timestamp *time.Time
	Title     string
	AccountID int64
	Amount    decimal.Decimal
}

// RecordMovement appends one movement and adjusts the account's cached
// balance in the same transaction. A zero amount is accepted and leaves
// the balance untouched.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*domain.Movement, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	timestamp := now
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	movement := &domain.Movement{
		AccountID: account.ID,
		Title:     input.Title,
		Amount:    input.Amount,
		Timestamp: timestamp,
	}

	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.notifyBalanceChanged(ctx, account.ID)

	return movement, nil
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	AccountID int64
	Limit     int
	Offset    int
}

// ListMovements lists an account's movements, most recent first.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.movementRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

// DeleteMovement removes one movement and reverses its effect on the
// account's balance, atomically.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, movementID, accountID int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	movement, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, movementID, accountID)
	if err != nil {
		return err
	}

	if err := uc.movementRepo.Delete(ctx, tx, movement.ID, accountID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateBalance(ctx, tx, accountID, account.ApplyDebit(movement.Amount), now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.notifyBalanceChanged(ctx, accountID)

	return nil
}

// ClearAccountMovements removes all movements for an account and resets
// its balance to zero, atomically.
func (uc *MovementUseCase) ClearAccountMovements(ctx context.Context, accountID int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	if err := uc.movementRepo.DeleteAllForAccount(ctx, tx, account.ID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, decimal.Zero, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.notifyBalanceChanged(ctx, accountID)

	return nil
}

func (uc *MovementUseCase) notifyBalanceChanged(ctx context.Context, accountID int64) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.BalanceChanged(ctx, accountID); err != nil {
		log.Warn().Err(err).Int64("account_id", accountID).Msg("balance notification failed")
	}
}
