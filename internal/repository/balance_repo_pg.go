package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The shared balance lives in a single named row. All mutations go through
// a blind delta so Postgres serializes concurrent credits and debits.
const balanceRowID = 1

type BalanceRepository interface {
	Current(ctx context.Context) (float64, error)
	Add(ctx context.Context, delta float64) error
}

type PGBalanceRepository struct {
	db *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) BalanceRepository {
	return &PGBalanceRepository{db: db}
}

// Current returns the running balance, or zero when the row has never been
// written.
func (r *PGBalanceRepository) Current(ctx context.Context) (float64, error) {
	var amount float64
	err := r.db.QueryRow(ctx, `SELECT amount FROM balance WHERE id=$1`, balanceRowID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, domain.StoreUnavailable(err)
	}
	return amount, nil
}

// Add applies a credit (positive delta) or debit (negative delta) as one
// atomic statement, creating the row on first use.
func (r *PGBalanceRepository) Add(ctx context.Context, delta float64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO balance (id, amount) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET amount = balance.amount + EXCLUDED.amount`, balanceRowID, delta)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

var _ BalanceRepository = (*PGBalanceRepository)(nil)
