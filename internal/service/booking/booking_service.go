package booking

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/Domenick1991/fleetops/internal/geo"
	"github.com/Domenick1991/fleetops/internal/kafka"
	"github.com/Domenick1991/fleetops/internal/pricing"
	"github.com/Domenick1991/fleetops/internal/refund"
	"github.com/Domenick1991/fleetops/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Quote(ctx context.Context, dep, arv string) (*QuoteResult, error)
	Book(ctx context.Context, input BookTicketInput) (*domain.Booking, error)
	Cancel(ctx context.Context, input CancelInput) (*CancelResult, error)
	RescheduleAll(ctx context.Context, input RescheduleInput) (int64, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	airports           repository.AirportRepository
	fleet              repository.FleetRepository
	balance            repository.BalanceRepository
	producer           Producer
	ledgerTopic        string
	notificationsTopic string
	now                func() time.Time
	tickets            *ticketSource
}

type QuoteResult struct {
	Dep           string
	Arv           string
	DistanceMiles int
	BaseCost      int
}

type BookTicketInput struct {
	Passenger    string  `json:"name"`
	Dep          string  `json:"dep_code"`
	Arv          string  `json:"arv_code"`
	DateOfFlight string  `json:"date_of_flight"`
	TotalCost    float64 `json:"total_cost"`
}

type CancelInput struct {
	TicketID        int64
	CostOverride    *float64
	PercentOverride *float64
}

type CancelResult struct {
	TicketID int64
	Percent  float64
	Amount   float64
}

type RescheduleInput struct {
	Dep    string `json:"dep"`
	Arv    string `json:"arv"`
	OldDOF string `json:"old_dof"`
	NewDOF string `json:"new_dof"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock fixes the service's notion of now, for tests.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	airports repository.AirportRepository,
	fleet repository.FleetRepository,
	balance repository.BalanceRepository,
	producer Producer,
	ledgerTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		airports:    airports,
		fleet:       fleet,
		balance:     balance,
		producer:    producer,
		ledgerTopic: ledgerTopic,
		now:         time.Now,
		tickets:     newTicketSource(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Quote prices a route against the whole fleet without writing anything.
func (s *BookingService) Quote(ctx context.Context, dep, arv string) (*QuoteResult, error) {
	depAirport, err := s.routableAirport(ctx, dep)
	if err != nil {
		return nil, err
	}
	arvAirport, err := s.routableAirport(ctx, arv)
	if err != nil {
		return nil, err
	}

	maxRange, err := s.fleet.MaxRangeMiles(ctx)
	if err != nil {
		return nil, err
	}

	distance := geo.DistanceMiles(*depAirport.Latitude, *depAirport.Longitude, *arvAirport.Latitude, *arvAirport.Longitude)
	if distance > maxRange {
		return nil, domain.RangeExceeded("no available aircraft can reach this destination: route is %d miles, fleet maximum is %d miles", distance, maxRange)
	}

	return &QuoteResult{
		Dep:           dep,
		Arv:           arv,
		DistanceMiles: distance,
		BaseCost:      pricing.BaseCost(distance),
	}, nil
}

// Book writes the booking record and then credits the balance. The two
// writes are sequential, not transactional: a crash in between leaves a
// booking with no matching credit.
func (s *BookingService) Book(ctx context.Context, input BookTicketInput) (*domain.Booking, error) {
	if input.Passenger == "" {
		return nil, domain.InvalidInput("name is required")
	}
	if input.TotalCost < 0 {
		return nil, domain.InvalidInput("total_cost must not be negative")
	}
	if input.DateOfFlight == "" {
		return nil, domain.InvalidInput("date_of_flight is required")
	}

	dof, err := parseFlightDate(input.DateOfFlight)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dof.Before(today) {
		return nil, domain.InvalidInput("cannot book a flight in the past")
	}

	booking := &domain.Booking{
		TicketID:     s.tickets.Next(),
		Passenger:    input.Passenger,
		Dep:          input.Dep,
		Arv:          input.Arv,
		DateOfFlight: dof,
		Cost:         input.TotalCost,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.balance.Add(ctx, booking.Cost); err != nil {
		return nil, err
	}

	s.publish(ctx, "ticket_booked", booking, booking.Cost)
	return booking, nil
}

// Cancel removes the booking and then debits the balance by the refund.
// Same two-write sequence as Book, with the same caveat.
func (s *BookingService) Cancel(ctx context.Context, input CancelInput) (*CancelResult, error) {
	booking, err := s.bookings.GetByTicketID(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}

	cost := booking.Cost
	if input.CostOverride != nil {
		cost = *input.CostOverride
	}

	res := refund.Compute(booking.DateOfFlight, s.now(), cost, input.PercentOverride)

	if err := s.bookings.Delete(ctx, booking.TicketID); err != nil {
		return nil, err
	}
	if err := s.balance.Add(ctx, -res.Amount); err != nil {
		return nil, err
	}

	s.publish(ctx, "ticket_cancelled", booking, res.Amount)
	return &CancelResult{TicketID: booking.TicketID, Percent: res.Percent, Amount: res.Amount}, nil
}

// RescheduleAll moves every booking matching the route and old date.
// Zero matches is a valid no-op.
func (s *BookingService) RescheduleAll(ctx context.Context, input RescheduleInput) (int64, error) {
	if input.Dep == "" || input.Arv == "" || input.OldDOF == "" || input.NewDOF == "" {
		return 0, domain.InvalidInput("dep, arv, old_dof and new_dof are required")
	}

	oldDOF, err := parseFlightDate(input.OldDOF)
	if err != nil {
		return 0, err
	}
	newDOF, err := parseFlightDate(input.NewDOF)
	if err != nil {
		return 0, err
	}

	return s.bookings.RescheduleAll(ctx, input.Dep, input.Arv, oldDOF, newDOF)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) routableAirport(ctx context.Context, code string) (*domain.Airport, error) {
	airport, err := s.airports.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !airport.HasCoordinates() {
		return nil, domain.NotFound("airport %s has no coordinates", code)
	}
	return airport, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, amount float64) {
	if s.producer == nil || s.ledgerTopic == "" {
		return
	}
	event := kafka.LedgerEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  booking.TicketID,
		Passenger: booking.Passenger,
		Dep:       booking.Dep,
		Arv:       booking.Arv,
		Amount:    amount,
		At:        s.now(),
	}
	if err := s.producer.Publish(ctx, s.ledgerTopic, event.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for ticket %d: %v", eventType, booking.TicketID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for ticket %d: %v", eventType, booking.TicketID, err)
		}
	}
}

// Flight dates arrive either as a bare date or with a time of day.
var flightDateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

func parseFlightDate(value string) (time.Time, error) {
	for _, layout := range flightDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.InvalidInput("invalid date format %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", value)
}

var _ BookingUseCase = (*BookingService)(nil)
