package services

import (
	"context"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/dtos"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

var airportsCacheKey = string(constants.CachePrefixAirports) + "ALL"

type AirportService struct {
	repo  *repositories.AirportRepository
	cache *ListCache
}

func NewAirportService(repo *repositories.AirportRepository, cache *ListCache) *AirportService {
	return &AirportService{repo: repo, cache: cache}
}

func (s *AirportService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.AirportView], error) {
	all, err := cachedList(s.cache, airportsCacheKey, func() ([]dtos.AirportView, error) {
		airports, _, err := s.repo.List(ctx, repositories.ListOptions{})
		if err != nil {
			return nil, err
		}
		views := make([]dtos.AirportView, 0, len(airports))
		for _, a := range airports {
			views = append(views, dtos.NewAirportView(a))
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return pageOf(page, all), nil
}

func (s *AirportService) Get(ctx context.Context, id uint) (*dtos.AirportView, error) {
	airport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dtos.NewAirportView(*airport)
	return &view, nil
}

func (s *AirportService) Create(ctx context.Context, req dtos.AirportRequest) (*dtos.AirportView, error) {
	airport := gormModels.Airport{}
	if err := applyAirport(&airport, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &airport); err != nil {
		return nil, translateWriteError(err)
	}
	s.cache.invalidate(airportsCacheKey)

	logging.Info("Airport created", "airport_id", airport.ID, "name", airport.Name)
	view := dtos.NewAirportView(airport)
	return &view, nil
}

func (s *AirportService) Update(ctx context.Context, id uint, req dtos.AirportRequest) (*dtos.AirportView, error) {
	airport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAirport(airport, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, airport); err != nil {
		return nil, translateWriteError(err)
	}
	s.cache.invalidate(airportsCacheKey)

	view := dtos.NewAirportView(*airport)
	return &view, nil
}

// Delete refuses while a route starts or ends at the airport
func (s *AirportService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(airportsCacheKey)
	logging.Info("Airport deleted", "airport_id", id)
	return nil
}

// InvalidateCache drops the cached airport list, used after bulk imports
func (s *AirportService) InvalidateCache() {
	s.cache.invalidate(airportsCacheKey)
}

func applyAirport(airport *gormModels.Airport, req dtos.AirportRequest) error {
	f := fieldErrors{}
	name := requireText(f, "name", req.Name, maxNameLength)
	city := requireText(f, "closest_big_city", req.ClosestBigCity, maxNameLength)
	if err := f.err(); err != nil {
		return err
	}
	airport.Name = name
	airport.ClosestBigCity = city
	return nil
}

// translateWriteError maps unique name collisions to ErrAlreadyExists
func translateWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}
