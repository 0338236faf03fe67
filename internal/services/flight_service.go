package services

import (
	"context"
	"errors"
	"fmt"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/dtos"
	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"golang.org/x/sync/errgroup"
)

// FlightService manages flights. Seat counts are read live on every request.
type FlightService struct {
	repo      *repositories.FlightRepository
	routes    *repositories.RouteRepository
	airplanes *repositories.AirplaneRepository
	crew      *repositories.CrewRepository
	tickets   *repositories.TicketRepository
}

func NewFlightService(
	repo *repositories.FlightRepository,
	routes *repositories.RouteRepository,
	airplanes *repositories.AirplaneRepository,
	crew *repositories.CrewRepository,
	tickets *repositories.TicketRepository,
) *FlightService {
	return &FlightService{
		repo:      repo,
		routes:    routes,
		airplanes: airplanes,
		crew:      crew,
		tickets:   tickets,
	}
}

func (s *FlightService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.FlightListView], error) {
	flights, total, err := s.repo.List(ctx, page.ListOptions())
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}
	taken, err := s.tickets.CountByFlights(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.FlightListView, 0, len(flights))
	for _, f := range flights {
		items = append(items, dtos.NewFlightListView(f, taken[f.ID]))
	}
	return newPage(page, items, total), nil
}

// Get loads the flight and its taken seats concurrently
func (s *FlightService) Get(ctx context.Context, id uint) (*dtos.FlightDetailView, error) {
	var (
		flight *gormModels.Flight
		taken  []entities.SeatKey
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flight, err = s.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		taken, err = s.tickets.TakenSeatList(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := dtos.NewFlightDetailView(*flight, taken)
	return &view, nil
}

func (s *FlightService) Create(ctx context.Context, req dtos.FlightRequest) (*dtos.FlightView, error) {
	flight := gormModels.Flight{}
	if err := s.apply(ctx, &flight, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &flight); err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	logging.Info("Flight created", "flight_id", flight.ID, "route_id", flight.RouteID, "airplane_id", flight.AirplaneID)
	view := dtos.NewFlightView(flight)
	return &view, nil
}

func (s *FlightService) Update(ctx context.Context, id uint, req dtos.FlightRequest) (*dtos.FlightView, error) {
	flight, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, flight, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("failed to update flight: %w", err)
	}

	view := dtos.NewFlightView(*flight)
	return &view, nil
}

// Delete removes the flight and every ticket sold on it
func (s *FlightService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.Info("Flight deleted", "flight_id", id)
	return nil
}

// apply checks references and the schedule, then copies the request onto flight
func (s *FlightService) apply(ctx context.Context, flight *gormModels.Flight, req dtos.FlightRequest) error {
	f := fieldErrors{}
	requireID(f, "route", req.Route)
	requireID(f, "airplane", req.Airplane)

	if req.DepartureTime.IsZero() {
		f.add("departure_time", constants.MsgRequired)
	}
	if req.ArrivalTime.IsZero() {
		f.add("arrival_time", constants.MsgRequired)
	}
	if !req.DepartureTime.IsZero() && !req.ArrivalTime.IsZero() && !req.ArrivalTime.After(req.DepartureTime) {
		f.add("arrival_time", constants.MsgArrivalBeforeDepart)
	}

	if req.Route != 0 {
		if err := s.checkExists(f, "route", func() error {
			_, err := s.routes.FindByID(ctx, req.Route)
			return err
		}); err != nil {
			return err
		}
	}
	if req.Airplane != 0 {
		if err := s.checkExists(f, "airplane", func() error {
			_, err := s.airplanes.FindByID(ctx, req.Airplane)
			return err
		}); err != nil {
			return err
		}
	}

	memberIDs := uniqueIDs(req.Members)
	members, err := s.crew.FindByIDs(ctx, memberIDs)
	if err != nil {
		return err
	}
	if len(members) != len(memberIDs) {
		f.add("members", constants.MsgUnknownReference)
	}

	if err := f.err(); err != nil {
		return err
	}

	flight.RouteID = req.Route
	flight.AirplaneID = req.Airplane
	flight.DepartureTime = req.DepartureTime.UTC()
	flight.ArrivalTime = req.ArrivalTime.UTC()
	flight.Members = members
	return nil
}

func (s *FlightService) checkExists(f fieldErrors, field string, find func() error) error {
	err := find()
	if errors.Is(err, repositories.ErrNotFound) {
		f.add(field, constants.MsgUnknownReference)
		return nil
	}
	return err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
