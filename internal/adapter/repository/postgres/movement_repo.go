package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/willowbank/ledger/internal/domain"
	"github.com/willowbank/ledger/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `id, account_id, title, amount, occurred_at, is_transfer`

// Create inserts a new movement inside tx. The store assigns the ID.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	const query = `
		INSERT INTO movements (account_id, title, amount, occurred_at, is_transfer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	pgxTx := tx.(*Tx).PgxTx()

	amount, err := decimalToNumeric(movement.Amount)
	if err != nil {
		return err
	}

	return pgxTx.QueryRow(ctx, query,
		movement.AccountID,
		movement.Title,
		amount,
		timeToPgTimestamptz(movement.Timestamp),
		movement.IsTransfer,
	).Scan(&movement.ID)
}

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id int64) (*domain.Movement, error) {
	const query = `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`

	movement, err := scanMovement(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return movement, nil
}

// GetByIDForUpdate retrieves a movement scoped to an account with a FOR UPDATE lock.
func (r *MovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id, accountID int64) (*domain.Movement, error) {
	const query = `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 AND account_id = $2 FOR UPDATE`

	pgxTx := tx.(*Tx).PgxTx()

	movement, err := scanMovement(pgxTx.QueryRow(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return movement, nil
}

// ListByAccount retrieves an account's movements, most recent timestamp
// first, insertion order breaking ties.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Movement, error) {
	const query = `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// Delete removes one movement scoped to an account.
func (r *MovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id, accountID int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM movements WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// DeleteAllForAccount removes all movements for an account.
func (r *MovementRepository) DeleteAllForAccount(ctx context.Context, tx usecase.Transaction, accountID int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM movements WHERE account_id = $1`, accountID)

	return err
}

// SumByAccount returns the sum of the account's movement amounts.
func (r *MovementRepository) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM movements WHERE account_id = $1`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement   domain.Movement
		amount     pgtype.Numeric
		occurredAt pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.AccountID,
		&movement.Title,
		&amount,
		&occurredAt,
		&movement.IsTransfer,
	)
	if err != nil {
		return nil, err
	}

	movement.Amount = numericToDecimal(amount)
	movement.Timestamp = occurredAt.Time

	return &movement, nil
}
