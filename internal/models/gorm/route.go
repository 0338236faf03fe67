package gorm

import (
	"fmt"
	"time"
)

type Route struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	SourceID      uint      `gorm:"column:source_id;not null;index"`
	DestinationID uint      `gorm:"column:destination_id;not null;index"`
	Distance      int       `gorm:"column:distance;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Source      Airport `gorm:"foreignKey:SourceID;constraint:OnDelete:RESTRICT"`
	Destination Airport `gorm:"foreignKey:DestinationID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (Route) TableName() string {
	return "routes"
}

func (r Route) String() string {
	return fmt.Sprintf("%s, %s", r.Source.Name, r.Destination.Name)
}
