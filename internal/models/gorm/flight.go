package gorm

import (
	"fmt"
	"time"
)

type Flight struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	RouteID       uint      `gorm:"column:route_id;not null;index"`
	AirplaneID    uint      `gorm:"column:airplane_id;not null;index"`
	DepartureTime time.Time `gorm:"column:departure_time;not null;index"`
	ArrivalTime   time.Time `gorm:"column:arrival_time;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Route    Route    `gorm:"foreignKey:RouteID;constraint:OnDelete:RESTRICT"`
	Airplane Airplane `gorm:"foreignKey:AirplaneID;constraint:OnDelete:RESTRICT"`
	Members  []Crew   `gorm:"many2many:flight_crew;joinForeignKey:FlightID;joinReferences:CrewID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

func (f Flight) String() string {
	return fmt.Sprintf("%s - %s", f.Route.String(), f.Airplane.AirplaneType.Name)
}
