package repositories

import (
	"context"
	"fmt"

	"airport-booking/skyport/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// List returns airports ordered by name along with the total count
func (r *AirportRepository) List(ctx context.Context, opts ListOptions) ([]gorm.Airport, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airports: %w", err)
	}

	var airports []gorm.Airport
	err := opts.apply(r.db.WithContext(ctx).Order("name")).Find(&airports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list airports: %w", err)
	}
	return airports, total, nil
}

func (r *AirportRepository) FindByID(ctx context.Context, id uint) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).First(&airport, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &airport, nil
}

func (r *AirportRepository) Create(ctx context.Context, airport *gorm.Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

func (r *AirportRepository) Update(ctx context.Context, airport *gorm.Airport) error {
	return r.db.WithContext(ctx).Save(airport).Error
}

// Delete refuses while any route starts or ends at the airport
func (r *AirportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.First(&gorm.Airport{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := refuseIfReferenced(tx.Model(&gorm.Route{}).
			Where("source_id = ? OR destination_id = ?", id, id)); err != nil {
			return err
		}
		return tx.Delete(&gorm.Airport{}, id).Error
	})
}

// BatchInsert inserts airports, skipping names that already exist, and reports how many were added
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) (int64, error) {
	if len(airports) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(airports, 100)
	return res.RowsAffected, res.Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
