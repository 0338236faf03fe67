package services

import (
	"context"
	"time"

	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/models/entities"
)

const upcomingFlightsLimit = 50

// BookingStats is the admin overview of the booking tables
type BookingStats struct {
	Totals   entities.BookingTotals    `json:"totals"`
	Upcoming []UpcomingFlightOccupancy `json:"upcoming_flights"`
}

type UpcomingFlightOccupancy struct {
	FlightID  uint  `json:"flight_id"`
	Capacity  int64 `json:"capacity"`
	Taken     int64 `json:"taken"`
	Available int64 `json:"available"`
}

type StatsService struct {
	repo *repositories.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo *repositories.StatsRepository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

func (s *StatsService) Overview(ctx context.Context) (*BookingStats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.Upcoming(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := make([]UpcomingFlightOccupancy, 0, len(occupancy))
	for _, o := range occupancy {
		upcoming = append(upcoming, UpcomingFlightOccupancy{
			FlightID:  o.FlightID,
			Capacity:  o.Capacity,
			Taken:     o.Taken,
			Available: o.Available(),
		})
	}
	return &BookingStats{Totals: *totals, Upcoming: upcoming}, nil
}

// Upcoming returns occupancy of the next flights to depart
func (s *StatsService) Upcoming(ctx context.Context) ([]entities.FlightOccupancy, error) {
	return s.repo.UpcomingOccupancy(ctx, s.now().UTC(), upcomingFlightsLimit)
}
