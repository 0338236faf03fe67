package repositories

import (
	"context"
	"fmt"

	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// TakenSeatsTx returns the seats booked on a flight as seen by tx
func (r *TicketRepository) TakenSeatsTx(ctx context.Context, tx *gorm.DB, flightID uint) (entities.SeatSet, error) {
	keys, err := r.takenSeats(conn(ctx, r.db, tx), flightID)
	if err != nil {
		return nil, err
	}
	return entities.NewSeatSet(keys...), nil
}

// TakenSeatList returns the booked seats of a flight ordered by row then seat
func (r *TicketRepository) TakenSeatList(ctx context.Context, flightID uint) ([]entities.SeatKey, error) {
	return r.takenSeats(r.db.WithContext(ctx), flightID)
}

func (r *TicketRepository) takenSeats(q *gorm.DB, flightID uint) ([]entities.SeatKey, error) {
	var keys []entities.SeatKey
	err := q.Model(&gormModels.Ticket{}).
		Select("row", "seat").
		Where("flight_id = ?", flightID).
		Order("tickets.row").
		Order("tickets.seat").
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load taken seats: %w", err)
	}
	return keys, nil
}

// CountByFlights returns the number of tickets per flight id
func (r *TicketRepository) CountByFlights(ctx context.Context, flightIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(flightIDs))
	if len(flightIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FlightID uint
		Taken    int
	}
	err := r.db.WithContext(ctx).
		Model(&gormModels.Ticket{}).
		Select("flight_id, COUNT(*) AS taken").
		Where("flight_id IN ?", flightIDs).
		Group("flight_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	for _, row := range rows {
		counts[row.FlightID] = row.Taken
	}
	return counts, nil
}

// CreateBatchTx inserts tickets with plain INSERTs so the seat index rejects duplicates
func (r *TicketRepository) CreateBatchTx(ctx context.Context, tx *gorm.DB, tickets []gormModels.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return conn(ctx, r.db, tx).Omit("Flight").Create(&tickets).Error
}
