package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByCode(ctx context.Context, code string) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, code string) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, location, latitude, longitude FROM airports ORDER BY code`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.Location, &a.Latitude, &a.Longitude); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return airports, nil
}

func (r *PGAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT code, name, location, latitude, longitude FROM airports WHERE code=$1`, code)
	var a domain.Airport
	if err := row.Scan(&a.Code, &a.Name, &a.Location, &a.Latitude, &a.Longitude); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("airport %s not found", code)
		}
		return nil, domain.StoreUnavailable(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	_, err := r.db.Exec(ctx, `INSERT INTO airports (code, name, location, latitude, longitude) VALUES ($1, $2, $3, $4, $5)`,
		airport.Code, airport.Name, airport.Location, airport.Latitude, airport.Longitude)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Conflict("airport %s already exists", airport.Code)
		}
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM airports WHERE code=$1`, code)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if res.RowsAffected() == 0 {
		return domain.NotFound("airport %s not found", code)
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
