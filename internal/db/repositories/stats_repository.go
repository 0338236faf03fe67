package repositories

import (
	"context"
	"fmt"
	"time"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// StatsRepository runs reporting queries through sqlx
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Totals(ctx context.Context) (*entities.BookingTotals, error) {
	var totals entities.BookingTotals
	if err := r.db.GetContext(ctx, &totals, constants.CountBookingTotals); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	return &totals, nil
}

// UpcomingOccupancy returns seat usage for flights departing from since onwards
func (r *StatsRepository) UpcomingOccupancy(ctx context.Context, since time.Time, limit int) ([]entities.FlightOccupancy, error) {
	var rows []entities.FlightOccupancy
	query := r.db.Rebind(constants.UpcomingFlightOccupancy)
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to load flight occupancy: %w", err)
	}
	return rows, nil
}
