package repositories

import (
	"context"
	"fmt"

	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type CrewRepository struct {
	db *gorm.DB
}

func NewCrewRepository(db *gorm.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

func (r *CrewRepository) List(ctx context.Context, opts ListOptions) ([]gormModels.Crew, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.Crew{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count crew: %w", err)
	}

	var crew []gormModels.Crew
	err := opts.apply(r.db.WithContext(ctx).Order("last_name").Order("first_name")).Find(&crew).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list crew: %w", err)
	}
	return crew, total, nil
}

func (r *CrewRepository) FindByID(ctx context.Context, id uint) (*gormModels.Crew, error) {
	var member gormModels.Crew
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

// FindByIDs loads crew members; the result is shorter than ids when some are missing
func (r *CrewRepository) FindByIDs(ctx context.Context, ids []uint) ([]gormModels.Crew, error) {
	if len(ids) == 0 {
		return []gormModels.Crew{}, nil
	}
	var crew []gormModels.Crew
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&crew).Error; err != nil {
		return nil, fmt.Errorf("failed to load crew: %w", err)
	}
	return crew, nil
}

func (r *CrewRepository) Create(ctx context.Context, member *gormModels.Crew) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *CrewRepository) Update(ctx context.Context, member *gormModels.Crew) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete removes the member from every flight roster first
func (r *CrewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.Crew{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Exec("DELETE FROM flight_crew WHERE crew_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach crew from flights: %w", err)
		}
		return tx.Delete(&gormModels.Crew{}, id).Error
	})
}
