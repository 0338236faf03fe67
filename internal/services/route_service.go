package services

import (
	"context"
	"errors"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/models/dtos"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

type RouteService struct {
	repo     *repositories.RouteRepository
	airports *repositories.AirportRepository
}

func NewRouteService(repo *repositories.RouteRepository, airports *repositories.AirportRepository) *RouteService {
	return &RouteService{repo: repo, airports: airports}
}

func (s *RouteService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.RouteListView], error) {
	routes, total, err := s.repo.List(ctx, page.ListOptions())
	if err != nil {
		return nil, err
	}
	items := make([]dtos.RouteListView, 0, len(routes))
	for _, r := range routes {
		items = append(items, dtos.NewRouteListView(r))
	}
	return newPage(page, items, total), nil
}

func (s *RouteService) Get(ctx context.Context, id uint) (*dtos.RouteDetailView, error) {
	route, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dtos.NewRouteDetailView(*route)
	return &view, nil
}

func (s *RouteService) Create(ctx context.Context, req dtos.RouteRequest) (*dtos.RouteView, error) {
	route := gormModels.Route{}
	if err := s.apply(ctx, &route, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &route); err != nil {
		return nil, err
	}
	view := dtos.NewRouteView(route)
	return &view, nil
}

func (s *RouteService) Update(ctx context.Context, id uint, req dtos.RouteRequest) (*dtos.RouteView, error) {
	route, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, route, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, route); err != nil {
		return nil, err
	}
	view := dtos.NewRouteView(*route)
	return &view, nil
}

func (s *RouteService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// apply validates both endpoints exist and differ
func (s *RouteService) apply(ctx context.Context, route *gormModels.Route, req dtos.RouteRequest) error {
	f := fieldErrors{}
	requireID(f, "source", req.Source)
	requireID(f, "destination", req.Destination)
	requirePositive(f, "distance", req.Distance)

	if req.Source != 0 && req.Source == req.Destination {
		f.add("destination", constants.MsgRouteSameEndpoints)
	}
	for field, id := range map[string]uint{"source": req.Source, "destination": req.Destination} {
		if id == 0 {
			continue
		}
		if _, err := s.airports.FindByID(ctx, id); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			f.add(field, constants.MsgUnknownReference)
		}
	}
	if err := f.err(); err != nil {
		return err
	}

	route.SourceID = req.Source
	route.DestinationID = req.Destination
	route.Distance = req.Distance
	return nil
}
