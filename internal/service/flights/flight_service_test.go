package flights

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFleetRepository struct {
	mock.Mock
}

func (m *MockFleetRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *MockFleetRepository) GetByRegNo(ctx context.Context, regNo string) (*domain.Aircraft, error) {
	args := m.Called(ctx, regNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *MockFleetRepository) MaxRangeMiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Current(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBalanceRepository) Add(ctx context.Context, delta float64) error {
	args := m.Called(ctx, delta)
	return args.Error(0)
}

func coord(v float64) *float64 { return &v }

func testAirports() (dep, arv *domain.Airport) {
	dep = &domain.Airport{Code: "VOCI", Name: "Cochin International", Latitude: coord(10.0), Longitude: coord(76.0)}
	arv = &domain.Airport{Code: "MAAS", Name: "Chennai International", Latitude: coord(13.0), Longitude: coord(80.0)}
	return dep, arv
}

func TestFlightService_OperateFlight_Success(t *testing.T) {
	mockFleet := &MockFleetRepository{}
	mockAirports := &MockAirportRepository{}
	mockBalance := &MockBalanceRepository{}

	service := NewFlightService(mockFleet, mockAirports, mockBalance, WithRand(rand.New(rand.NewSource(1))))

	ctx := context.Background()
	dep, arv := testAirports()
	aircraft := &domain.Aircraft{RegNo: "VT-ABC", Model: "A320", Capacity: 150, MaxRangeMiles: 3000, Status: "Available"}

	mockAirports.On("GetByCode", ctx, "VOCI").Return(dep, nil).Once()
	mockAirports.On("GetByCode", ctx, "MAAS").Return(arv, nil).Once()
	mockFleet.On("GetByRegNo", ctx, "VT-ABC").Return(aircraft, nil).Once()

	var credited float64
	mockBalance.On("Add", ctx, mock.AnythingOfType("float64")).Run(func(args mock.Arguments) {
		credited = args.Get(1).(float64)
	}).Return(nil).Once()

	report, err := service.OperateFlight(ctx, OperateFlightInput{RegNo: "VT-ABC", Dep: "VOCI", Arv: "MAAS"})

	assert.NoError(t, err)
	assert.Equal(t, "Cochin International", report.Departure)
	assert.Equal(t, "Chennai International", report.Arrival)

	// Loads stay within [trunc(0.7*150), 150] for both directions.
	assert.GreaterOrEqual(t, report.PassengersTo, 105)
	assert.LessOrEqual(t, report.PassengersTo, 150)
	assert.GreaterOrEqual(t, report.PassengersFrom, 105)
	assert.LessOrEqual(t, report.PassengersFrom, 150)

	// Earnings are exactly passengers times the per-passenger fare, and the
	// credited delta matches the reported earnings.
	costPerPassenger := report.TotalEarnings / (report.PassengersTo + report.PassengersFrom)
	assert.Equal(t, report.TotalEarnings, (report.PassengersTo+report.PassengersFrom)*costPerPassenger)
	assert.Equal(t, float64(report.TotalEarnings), credited)

	mockBalance.AssertExpectations(t)
}

func TestFlightService_OperateFlight_Deterministic(t *testing.T) {
	run := func() *FlightReport {
		mockFleet := &MockFleetRepository{}
		mockAirports := &MockAirportRepository{}
		mockBalance := &MockBalanceRepository{}

		service := NewFlightService(mockFleet, mockAirports, mockBalance, WithRand(rand.New(rand.NewSource(42))))

		ctx := context.Background()
		dep, arv := testAirports()
		mockAirports.On("GetByCode", ctx, "VOCI").Return(dep, nil)
		mockAirports.On("GetByCode", ctx, "MAAS").Return(arv, nil)
		mockFleet.On("GetByRegNo", ctx, "VT-ABC").Return(&domain.Aircraft{RegNo: "VT-ABC", Capacity: 150, MaxRangeMiles: 3000}, nil)
		mockBalance.On("Add", ctx, mock.Anything).Return(nil)

		report, err := service.OperateFlight(ctx, OperateFlightInput{RegNo: "VT-ABC", Dep: "VOCI", Arv: "MAAS"})
		assert.NoError(t, err)
		return report
	}

	assert.Equal(t, run(), run())
}

func TestFlightService_OperateFlight_RangeExceeded(t *testing.T) {
	mockFleet := &MockFleetRepository{}
	mockAirports := &MockAirportRepository{}
	mockBalance := &MockBalanceRepository{}

	service := NewFlightService(mockFleet, mockAirports, mockBalance)

	ctx := context.Background()
	dep, arv := testAirports()
	shortRange := &domain.Aircraft{RegNo: "VT-SML", Model: "DHC-6", Capacity: 19, MaxRangeMiles: 300}

	mockAirports.On("GetByCode", ctx, "VOCI").Return(dep, nil).Once()
	mockAirports.On("GetByCode", ctx, "MAAS").Return(arv, nil).Once()
	mockFleet.On("GetByRegNo", ctx, "VT-SML").Return(shortRange, nil).Once()

	report, err := service.OperateFlight(ctx, OperateFlightInput{RegNo: "VT-SML", Dep: "VOCI", Arv: "MAAS"})

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, domain.KindRangeExceeded, domain.KindOf(err))
	assert.Contains(t, err.Error(), "300")
	mockBalance.AssertNotCalled(t, "Add")
}

func TestFlightService_OperateFlight_AircraftNotFound(t *testing.T) {
	mockFleet := &MockFleetRepository{}
	mockAirports := &MockAirportRepository{}
	mockBalance := &MockBalanceRepository{}

	service := NewFlightService(mockFleet, mockAirports, mockBalance)

	ctx := context.Background()
	dep, arv := testAirports()
	mockAirports.On("GetByCode", ctx, "VOCI").Return(dep, nil).Once()
	mockAirports.On("GetByCode", ctx, "MAAS").Return(arv, nil).Once()
	mockFleet.On("GetByRegNo", ctx, "VT-NOP").Return(nil, domain.NotFound("aircraft VT-NOP not found in fleet")).Once()

	report, err := service.OperateFlight(ctx, OperateFlightInput{RegNo: "VT-NOP", Dep: "VOCI", Arv: "MAAS"})

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	mockBalance.AssertNotCalled(t, "Add")
}

func TestFlightService_OperateFlight_AirportWithoutCoordinates(t *testing.T) {
	mockFleet := &MockFleetRepository{}
	mockAirports := &MockAirportRepository{}
	mockBalance := &MockBalanceRepository{}

	service := NewFlightService(mockFleet, mockAirports, mockBalance)

	ctx := context.Background()
	mockAirports.On("GetByCode", ctx, "VOCI").Return(&domain.Airport{Code: "VOCI"}, nil).Once()

	report, err := service.OperateFlight(ctx, OperateFlightInput{RegNo: "VT-ABC", Dep: "VOCI", Arv: "MAAS"})

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	mockFleet.AssertNotCalled(t, "GetByRegNo")
	mockBalance.AssertNotCalled(t, "Add")
}

func TestFlightService_SimulateLoad_Bounds(t *testing.T) {
	service := NewFlightService(&MockFleetRepository{}, &MockAirportRepository{}, &MockBalanceRepository{}, WithRand(rand.New(rand.NewSource(7))))

	for i := 0; i < 500; i++ {
		load := service.simulateLoad(10)
		assert.GreaterOrEqual(t, load, 7)
		assert.LessOrEqual(t, load, 10)
	}

	// A single-seat aircraft always flies full.
	for i := 0; i < 20; i++ {
		assert.Equal(t, 1, service.simulateLoad(1))
	}
}

func TestFlightService_ListFleet_DefaultsFromRepo(t *testing.T) {
	mockFleet := &MockFleetRepository{}
	service := NewFlightService(mockFleet, &MockAirportRepository{}, &MockBalanceRepository{})

	ctx := context.Background()
	fleet := []domain.Aircraft{{RegNo: "VT-ABC", Model: "A320", Capacity: 150, MaxRangeMiles: 3000, Status: "Available"}}
	mockFleet.On("List", ctx).Return(fleet, nil).Once()

	got, err := service.ListFleet(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fleet, got)
}

func TestFlightService_Balance(t *testing.T) {
	mockBalance := &MockBalanceRepository{}
	service := NewFlightService(&MockFleetRepository{}, &MockAirportRepository{}, mockBalance)

	ctx := context.Background()
	mockBalance.On("Current", ctx).Return(12345.5, nil).Once()

	amount, err := service.Balance(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 12345.5, amount)
}
