package repositories

import (
	"context"
	"fmt"

	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type FlightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// withDisplayRelations preloads what the list and detail views print
func withDisplayRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Airplane.AirplaneType")
}

func (r *FlightRepository) List(ctx context.Context, opts ListOptions) ([]gormModels.Flight, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.Flight{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count flights: %w", err)
	}

	var flights []gormModels.Flight
	err := opts.apply(withDisplayRelations(r.db.WithContext(ctx)).
		Order("departure_time").
		Order("id")).
		Find(&flights).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, total, nil
}

// FindByID loads a flight with route, airplane and crew
func (r *FlightRepository) FindByID(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight
	err := withDisplayRelations(r.db.WithContext(ctx)).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("crew.id") }).
		First(&flight, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &flight, nil
}

// Create inserts the flight and its crew roster
func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := flight.Members
		if err := tx.Omit("Route", "Airplane", "Members").Create(flight).Error; err != nil {
			return err
		}
		if len(members) > 0 {
			if err := tx.Model(flight).Association("Members").Replace(members); err != nil {
				return fmt.Errorf("failed to attach crew: %w", err)
			}
		}
		return nil
	})
}

// Update saves the flight and replaces its crew roster
func (r *FlightRepository) Update(ctx context.Context, flight *gormModels.Flight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := flight.Members
		if err := tx.Omit("Route", "Airplane", "Members").Save(flight).Error; err != nil {
			return err
		}
		if err := tx.Model(flight).Association("Members").Replace(members); err != nil {
			return fmt.Errorf("failed to replace crew: %w", err)
		}
		return nil
	})
}

// Delete removes the flight together with its tickets and roster
func (r *FlightRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.Flight{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("flight_id = ?", id).Delete(&gormModels.Ticket{}).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
		if err := tx.Exec("DELETE FROM flight_crew WHERE flight_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach crew: %w", err)
		}
		return tx.Delete(&gormModels.Flight{}, id).Error
	})
}

// SeatGeometryTx resolves the cabin layout of the airplane operating a flight
func (r *FlightRepository) SeatGeometryTx(ctx context.Context, tx *gorm.DB, flightID uint) (*entities.SeatGeometry, error) {
	var row struct {
		Rows       int
		SeatsInRow int
	}
	res := conn(ctx, r.db, tx).
		Table("flights").
		Select("airplanes.rows AS rows, airplanes.seats_in_row AS seats_in_row").
		Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
		Where("flights.id = ?", flightID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to load seat geometry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &entities.SeatGeometry{FlightID: flightID, Rows: row.Rows, SeatsInRow: row.SeatsInRow}, nil
}
