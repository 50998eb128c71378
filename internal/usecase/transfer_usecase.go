package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
)

// TransferUseCase executes peer-to-peer transfers as one atomic unit:
// either both movements are written and both balances updated, or nothing is.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	notifier     BalanceNotifier
	retrier      Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	notifier BalanceNotifier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		notifier:     notifier,
	}
}

// WithRetrier attaches a retrier for transient storage failures
// (deadlocks, serialization conflicts).
func (uc *TransferUseCase) WithRetrier(retrier Retrier) *TransferUseCase {
	uc.retrier = retrier
	return uc
}

// TransferInput represents a transfer request. Amount is the requested
// positive amount to move from source to destination.
type TransferInput struct {
	Title                string
	SourceAccountID      int64
	DestinationAccountID int64
	Amount               decimal.Decimal
}

// Transfer moves amount between two accounts. Validation errors are
// returned before any store access; once the dual write begins it runs
// to commit or full rollback.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransferReceipt, error) {
	transfer := &domain.Transfer{
		SourceAccountID:      input.SourceAccountID,
		DestinationAccountID: input.DestinationAccountID,
		Title:                input.Title,
		Amount:               input.Amount,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	var receipt *domain.TransferReceipt

	execute := func() error {
		r, err := uc.execute(ctx, transfer)
		if err != nil {
			return err
		}

		receipt = r

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, execute)
	} else {
		err = execute()
	}

	if err != nil {
		return nil, err
	}

	uc.notifyBalanceChanged(ctx, input.SourceAccountID)

	return receipt, nil
}

func (uc *TransferUseCase) execute(ctx context.Context, transfer *domain.Transfer) (*domain.TransferReceipt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending ID order to avoid deadlocks between
	// opposite-direction transfers.
	ids := []int64{transfer.SourceAccountID, transfer.DestinationAccountID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var source, destination *domain.Account
	for _, account := range accounts {
		switch account.ID {
		case transfer.SourceAccountID:
			source = account
		case transfer.DestinationAccountID:
			destination = account
		}
	}

	// Check order: source presence, source funds, destination presence.
	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := source.ValidateDebit(transfer.Amount); err != nil {
		return nil, err
	}

	if destination == nil {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()
	title := domain.TransferTitlePrefix + transfer.Title

	debit := &domain.Movement{
		AccountID:  source.ID,
		Title:      title,
		Amount:     transfer.Amount.Neg(),
		Timestamp:  now,
		IsTransfer: true,
	}

	if err := uc.movementRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.ID, source.ApplyDebit(transfer.Amount), now); err != nil {
		return nil, err
	}

	credit := &domain.Movement{
		AccountID:  destination.ID,
		Title:      title,
		Amount:     transfer.Amount,
		Timestamp:  now,
		IsTransfer: true,
	}

	if err := uc.movementRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.ID, destination.ApplyCredit(transfer.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferReceipt{Debit: debit, Credit: credit}, nil
}

func (uc *TransferUseCase) notifyBalanceChanged(ctx context.Context, accountID int64) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.BalanceChanged(ctx, accountID); err != nil {
		log.Warn().Err(err).Int64("account_id", accountID).Msg("balance notification failed")
	}
}
