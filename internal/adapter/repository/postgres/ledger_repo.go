package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/willowbank/ledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindBalanceMismatches returns accounts whose cached balance disagrees
// with the sum of their movements.
func (r *LedgerRepository) FindBalanceMismatches(ctx context.Context) ([]*domain.BalanceMismatch, error) {
	const query = `
		SELECT a.id, a.balance, COALESCE(SUM(m.amount), 0) AS movement_sum
		FROM accounts a
		LEFT JOIN movements m ON m.account_id = a.id
		GROUP BY a.id, a.balance
		HAVING a.balance <> COALESCE(SUM(m.amount), 0)
		ORDER BY a.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatches []*domain.BalanceMismatch
	for rows.Next() {
		var (
			mismatch domain.BalanceMismatch
			balance  pgtype.Numeric
			sum      pgtype.Numeric
		)

		if err := rows.Scan(&mismatch.AccountID, &balance, &sum); err != nil {
			return nil, err
		}

		mismatch.Balance = numericToDecimal(balance)
		mismatch.MovementSum = numericToDecimal(sum)
		mismatches = append(mismatches, &mismatch)
	}

	return mismatches, rows.Err()
}
