package airports

import (
	"context"

	"github.com/Domenick1991/fleetops/internal/domain"
	"github.com/Domenick1991/fleetops/internal/repository"
)

type AirportUseCase interface {
	List(ctx context.Context) ([]domain.Airport, error)
	Add(ctx context.Context, input AddAirportInput) (*domain.Airport, error)
	Remove(ctx context.Context, code string) error
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type AirportService struct {
	repo  repository.AirportRepository
	cache Cache
}

type AddAirportInput struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func NewAirportService(repo repository.AirportRepository, cache Cache) *AirportService {
	return &AirportService{repo: repo, cache: cache}
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *AirportService) Add(ctx context.Context, input AddAirportInput) (*domain.Airport, error) {
	if input.Code == "" || input.Name == "" {
		return nil, domain.InvalidInput("code and name are required")
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, domain.InvalidInput("latitude and longitude are required")
	}

	airport := &domain.Airport{
		Code:      input.Code,
		Name:      input.Name,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAirports(ctx)
	}
	return airport, nil
}

// Remove deletes the airport. Bookings that reference the code are left
// in place and keep their route strings; they simply stop resolving.
func (s *AirportService) Remove(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAirports(ctx)
	}
	return nil
}

var _ AirportUseCase = (*AirportService)(nil)
