package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the caller
	ErrNotFound = errors.New("record not found")
	// ErrProtected is returned when deleting a row other rows still reference
	ErrProtected = errors.New("record is referenced by other records")
)

// ListOptions pages a list query. A zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) apply(q *gorm.DB) *gorm.DB {
	if o.Limit > 0 {
		q = q.Limit(o.Limit)
	}
	if o.Offset > 0 {
		q = q.Offset(o.Offset)
	}
	return q
}

// conn returns tx bound to ctx when the caller runs inside a transaction, otherwise db
func conn(ctx context.Context, db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// refuseIfReferenced returns ErrProtected when the query matches any row
func refuseIfReferenced(q *gorm.DB) error {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrProtected
	}
	return nil
}
