package gorm

import (
	"time"
)

// Airport is reference data; routes point at it from both ends
type Airport struct {
	ID             uint      `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;type:varchar(80);not null;uniqueIndex"`
	ClosestBigCity string    `gorm:"column:closest_big_city;type:varchar(80);not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

func (a Airport) String() string {
	return a.Name
}
