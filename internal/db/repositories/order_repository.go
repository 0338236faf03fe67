package repositories

import (
	"context"
	"fmt"

	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateTx inserts the order row only; tickets are written separately
func (r *OrderRepository) CreateTx(ctx context.Context, tx *gorm.DB, order *gormModels.Order) error {
	return conn(ctx, r.db, tx).Omit("User", "Tickets").Create(order).Error
}

// ListByUser returns the user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint, opts ListOptions) ([]gormModels.Order, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&gormModels.Order{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []gormModels.Order
	err = opts.apply(r.db.WithContext(ctx).
		Preload("User").
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("tickets.id") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// FindForUser loads an order with tickets and their flights. Orders owned by someone
// else are reported as ErrNotFound.
func (r *OrderRepository) FindForUser(ctx context.Context, id, userID uint) (*gormModels.Order, error) {
	var order gormModels.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("tickets.id") }).
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Preload("Tickets.Flight.Airplane.AirplaneType").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// Delete removes the order and its tickets, freeing their seats
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&gormModels.Order{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&gormModels.Ticket{}).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
		return tx.Delete(&gormModels.Order{}, id).Error
	})
}
