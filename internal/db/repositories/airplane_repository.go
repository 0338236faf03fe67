package repositories

import (
	"context"
	"fmt"

	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type AirplaneTypeRepository struct {
	db *gorm.DB
}

func NewAirplaneTypeRepository(db *gorm.DB) *AirplaneTypeRepository {
	return &AirplaneTypeRepository{db: db}
}

func (r *AirplaneTypeRepository) List(ctx context.Context, opts ListOptions) ([]gormModels.AirplaneType, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.AirplaneType{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airplane types: %w", err)
	}

	var types []gormModels.AirplaneType
	if err := opts.apply(r.db.WithContext(ctx).Order("name")).Find(&types).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list airplane types: %w", err)
	}
	return types, total, nil
}

func (r *AirplaneTypeRepository) FindByID(ctx context.Context, id uint) (*gormModels.AirplaneType, error) {
	var t gormModels.AirplaneType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// FindByName resolves the slug airplanes use to reference their type
func (r *AirplaneTypeRepository) FindByName(ctx context.Context, name string) (*gormModels.AirplaneType, error) {
	var t gormModels.AirplaneType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *AirplaneTypeRepository) Create(ctx context.Context, t *gormModels.AirplaneType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AirplaneTypeRepository) Update(ctx context.Context, t *gormModels.AirplaneType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete refuses while any airplane has this type
func (r *AirplaneTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.AirplaneType{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := refuseIfReferenced(tx.Model(&gormModels.Airplane{}).Where("airplane_type_id = ?", id)); err != nil {
			return err
		}
		return tx.Delete(&gormModels.AirplaneType{}, id).Error
	})
}

type AirplaneRepository struct {
	db *gorm.DB
}

func NewAirplaneRepository(db *gorm.DB) *AirplaneRepository {
	return &AirplaneRepository{db: db}
}

func (r *AirplaneRepository) List(ctx context.Context, opts ListOptions) ([]gormModels.Airplane, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.Airplane{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count airplanes: %w", err)
	}

	var airplanes []gormModels.Airplane
	err := opts.apply(r.db.WithContext(ctx).Preload("AirplaneType").Order("name")).Find(&airplanes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list airplanes: %w", err)
	}
	return airplanes, total, nil
}

func (r *AirplaneRepository) FindByID(ctx context.Context, id uint) (*gormModels.Airplane, error) {
	var airplane gormModels.Airplane
	if err := r.db.WithContext(ctx).Preload("AirplaneType").First(&airplane, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &airplane, nil
}

func (r *AirplaneRepository) Create(ctx context.Context, airplane *gormModels.Airplane) error {
	return r.db.WithContext(ctx).Omit("AirplaneType").Create(airplane).Error
}

func (r *AirplaneRepository) Update(ctx context.Context, airplane *gormModels.Airplane) error {
	return r.db.WithContext(ctx).Omit("AirplaneType").Save(airplane).Error
}

// Delete refuses while any flight is operated by the airplane
func (r *AirplaneRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.Airplane{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := refuseIfReferenced(tx.Model(&gormModels.Flight{}).Where("airplane_id = ?", id)); err != nil {
			return err
		}
		return tx.Delete(&gormModels.Airplane{}, id).Error
	})
}
