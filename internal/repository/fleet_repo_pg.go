package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FleetRepository interface {
	List(ctx context.Context) ([]domain.Aircraft, error)
	GetByRegNo(ctx context.Context, regNo string) (*domain.Aircraft, error)
	MaxRangeMiles(ctx context.Context) (int, error)
}

type PGFleetRepository struct {
	db *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) FleetRepository {
	return &PGFleetRepository{db: db}
}

func (r *PGFleetRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	rows, err := r.db.Query(ctx, `SELECT reg_no, model, capacity, max_range_miles, COALESCE(status, 'Available') FROM fleet ORDER BY reg_no`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	fleet := make([]domain.Aircraft, 0)
	for rows.Next() {
		var a domain.Aircraft
		if err := rows.Scan(&a.RegNo, &a.Model, &a.Capacity, &a.MaxRangeMiles, &a.Status); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		fleet = append(fleet, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return fleet, nil
}

func (r *PGFleetRepository) GetByRegNo(ctx context.Context, regNo string) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT reg_no, model, capacity, max_range_miles, COALESCE(status, 'Available') FROM fleet WHERE reg_no=$1`, regNo)
	var a domain.Aircraft
	if err := row.Scan(&a.RegNo, &a.Model, &a.Capacity, &a.MaxRangeMiles, &a.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("aircraft %s not found in fleet", regNo)
		}
		return nil, domain.StoreUnavailable(err)
	}
	return &a, nil
}

// MaxRangeMiles returns the longest range across the whole fleet. An empty
// fleet is reported as NotFound so callers can surface "no aircraft".
func (r *PGFleetRepository) MaxRangeMiles(ctx context.Context) (int, error) {
	var maxRange *int
	if err := r.db.QueryRow(ctx, `SELECT MAX(max_range_miles) FROM fleet`).Scan(&maxRange); err != nil {
		return 0, domain.StoreUnavailable(err)
	}
	if maxRange == nil {
		return 0, domain.NotFound("no aircraft in the fleet")
	}
	return *maxRange, nil
}

var _ FleetRepository = (*PGFleetRepository)(nil)
