package repositories

import (
	"context"
	"fmt"

	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) List(ctx context.Context, opts ListOptions) ([]gormModels.Route, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.Route{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	var routes []gormModels.Route
	err := opts.apply(r.db.WithContext(ctx).
		Preload("Source").
		Preload("Destination").
		Order("id")).
		Find(&routes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, total, nil
}

func (r *RouteRepository) FindByID(ctx context.Context, id uint) (*gormModels.Route, error) {
	var route gormModels.Route
	err := r.db.WithContext(ctx).
		Preload("Source").
		Preload("Destination").
		First(&route, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &route, nil
}

func (r *RouteRepository) Create(ctx context.Context, route *gormModels.Route) error {
	return r.db.WithContext(ctx).Omit("Source", "Destination").Create(route).Error
}

func (r *RouteRepository) Update(ctx context.Context, route *gormModels.Route) error {
	return r.db.WithContext(ctx).Omit("Source", "Destination").Save(route).Error
}

// Delete refuses while any flight flies the route
func (r *RouteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.Route{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := refuseIfReferenced(tx.Model(&gormModels.Flight{}).Where("route_id = ?", id)); err != nil {
			return err
		}
		return tx.Delete(&gormModels.Route{}, id).Error
	})
}
