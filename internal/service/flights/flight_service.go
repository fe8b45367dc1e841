package flights

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/Domenick1991/fleetops/internal/geo"
	"github.com/Domenick1991/fleetops/internal/kafka"
	"github.com/Domenick1991/fleetops/internal/pricing"
	"github.com/Domenick1991/fleetops/internal/repository"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	OperateFlight(ctx context.Context, input OperateFlightInput) (*FlightReport, error)
	ListFleet(ctx context.Context) ([]domain.Aircraft, error)
	Balance(ctx context.Context) (float64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Simulated loads never drop below 70% of capacity.
const minLoadFactor = 0.7

type FlightService struct {
	fleet       repository.FleetRepository
	airports    repository.AirportRepository
	balance     repository.BalanceRepository
	producer    Producer
	ledgerTopic string

	mu  sync.Mutex
	rng *rand.Rand
}

type OperateFlightInput struct {
	RegNo string `json:"reg_no"`
	Dep   string `json:"dep_code"`
	Arv   string `json:"arv_code"`
}

type FlightReport struct {
	Departure      string
	Arrival        string
	PassengersTo   int
	PassengersFrom int
	TotalEarnings  int
}

type FlightServiceOption func(*FlightService)

// WithRand injects the randomness source so tests can seed the simulation.
func WithRand(rng *rand.Rand) FlightServiceOption {
	return func(s *FlightService) {
		s.rng = rng
	}
}

func WithLedgerTopic(producer Producer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.ledgerTopic = topic
	}
}

func NewFlightService(
	fleet repository.FleetRepository,
	airports repository.AirportRepository,
	balance repository.BalanceRepository,
	opts ...FlightServiceOption,
) *FlightService {
	service := &FlightService{
		fleet:    fleet,
		airports: airports,
		balance:  balance,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// OperateFlight validates the route against the aircraft, simulates the
// passenger load both ways and credits the balance with the earnings.
// All validation happens before the single balance write, so failure
// paths leave the store untouched.
func (s *FlightService) OperateFlight(ctx context.Context, input OperateFlightInput) (*FlightReport, error) {
	dep, err := s.routableAirport(ctx, input.Dep)
	if err != nil {
		return nil, err
	}
	arv, err := s.routableAirport(ctx, input.Arv)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fleet.GetByRegNo(ctx, input.RegNo)
	if err != nil {
		return nil, err
	}

	distance := geo.DistanceMiles(*dep.Latitude, *dep.Longitude, *arv.Latitude, *arv.Longitude)
	if distance > aircraft.MaxRangeMiles {
		return nil, domain.RangeExceeded("aircraft range is too short (%d miles) for this route (%d miles)", aircraft.MaxRangeMiles, distance)
	}

	costPerPassenger := pricing.BaseCost(distance)
	passengersTo := s.simulateLoad(aircraft.Capacity)
	passengersFrom := s.simulateLoad(aircraft.Capacity)
	totalEarnings := (passengersTo + passengersFrom) * costPerPassenger

	if err := s.balance.Add(ctx, float64(totalEarnings)); err != nil {
		return nil, err
	}

	s.publishOperated(ctx, input, float64(totalEarnings))

	return &FlightReport{
		Departure:      dep.Name,
		Arrival:        arv.Name,
		PassengersTo:   passengersTo,
		PassengersFrom: passengersFrom,
		TotalEarnings:  totalEarnings,
	}, nil
}

func (s *FlightService) ListFleet(ctx context.Context) ([]domain.Aircraft, error) {
	return s.fleet.List(ctx)
}

func (s *FlightService) Balance(ctx context.Context) (float64, error) {
	return s.balance.Current(ctx)
}

// simulateLoad draws a passenger count uniformly from
// [max(trunc(minLoadFactor*capacity), 1), capacity].
func (s *FlightService) simulateLoad(capacity int) int {
	lo := int(minLoadFactor * float64(capacity))
	if lo < 1 {
		lo = 1
	}
	if lo > capacity {
		lo = capacity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Intn(capacity-lo+1)
}

func (s *FlightService) routableAirport(ctx context.Context, code string) (*domain.Airport, error) {
	airport, err := s.airports.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !airport.HasCoordinates() {
		return nil, domain.NotFound("airport %s has no coordinates", code)
	}
	return airport, nil
}

func (s *FlightService) publishOperated(ctx context.Context, input OperateFlightInput, earnings float64) {
	if s.producer == nil || s.ledgerTopic == "" {
		return
	}
	event := kafka.LedgerEvent{
		ID:     uuid.NewString(),
		Type:   "flight_operated",
		Dep:    input.Dep,
		Arv:    input.Arv,
		Amount: earnings,
		At:     time.Now(),
	}
	if err := s.producer.Publish(ctx, s.ledgerTopic, event.ID, event); err != nil {
		log.Printf("WARNING: failed to publish flight_operated event for %s: %v", input.RegNo, err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
