package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
)

// AccountRepository defines data access for accounts. The repository is a
// translation layer only; balance rules live in the use cases.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// MovementRepository defines data access for movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, id int64) (*domain.Movement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id, accountID int64) (*domain.Movement, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Movement, error)
	Delete(ctx context.Context, tx Transaction, id, accountID int64) error
	DeleteAllForAccount(ctx context.Context, tx Transaction, accountID int64) error
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	FindBalanceMismatches(ctx context.Context) ([]*domain.BalanceMismatch, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// BalanceNotifier receives best-effort notifications after an account's
// balance changed. Failures must never fail the ledger operation.
type BalanceNotifier interface {
	BalanceChanged(ctx context.Context, accountID int64) error
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
