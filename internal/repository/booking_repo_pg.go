package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByTicketID(ctx context.Context, ticketID int64) (*domain.Booking, error)
	Delete(ctx context.Context, ticketID int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	RescheduleAll(ctx context.Context, dep, arv string, oldDOF, newDOF time.Time) (int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (ticket_id, passenger, dep, arv, date_of_flight, cost) VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.TicketID, booking.Passenger, booking.Dep, booking.Arv, booking.DateOfFlight, booking.Cost)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Conflict("ticket %d already exists", booking.TicketID)
		}
		return domain.StoreUnavailable(err)
	}
	return nil
}

func (r *PGBookingRepository) GetByTicketID(ctx context.Context, ticketID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT ticket_id, passenger, dep, arv, date_of_flight, cost FROM bookings WHERE ticket_id=$1`, ticketID)
	var b domain.Booking
	if err := row.Scan(&b.TicketID, &b.Passenger, &b.Dep, &b.Arv, &b.DateOfFlight, &b.Cost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("booking %d not found", ticketID)
		}
		return nil, domain.StoreUnavailable(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, ticketID int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if res.RowsAffected() == 0 {
		return domain.NotFound("booking %d not found", ticketID)
	}
	return nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT ticket_id, passenger, dep, arv, date_of_flight, cost FROM bookings ORDER BY date_of_flight DESC`)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.TicketID, &b.Passenger, &b.Dep, &b.Arv, &b.DateOfFlight, &b.Cost); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return bookings, nil
}

// RescheduleAll moves every booking on the route with the exact old date to
// the new date and reports how many were touched. Zero matches is not an
// error.
func (r *PGBookingRepository) RescheduleAll(ctx context.Context, dep, arv string, oldDOF, newDOF time.Time) (int64, error) {
	res, err := r.db.Exec(ctx, `UPDATE bookings SET date_of_flight=$1 WHERE dep=$2 AND arv=$3 AND date_of_flight=$4`, newDOF, dep, arv, oldDOF)
	if err != nil {
		return 0, domain.StoreUnavailable(err)
	}
	return res.RowsAffected(), nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
