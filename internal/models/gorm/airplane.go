package gorm

import "time"

type AirplaneType struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(80);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AirplaneType) TableName() string {
	return "airplane_types"
}

// Airplane carries the seat geometry every flight it operates inherits
type Airplane struct {
	ID             uint      `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;type:varchar(80);not null;uniqueIndex"`
	Rows           int       `gorm:"column:rows;not null"`
	SeatsInRow     int       `gorm:"column:seats_in_row;not null"`
	AirplaneTypeID uint      `gorm:"column:airplane_type_id;not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	AirplaneType AirplaneType `gorm:"foreignKey:AirplaneTypeID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (Airplane) TableName() string {
	return "airplanes"
}

// Capacity is the total number of seats
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) String() string {
	return a.Name
}
