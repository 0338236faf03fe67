package gorm

import "time"

type Crew struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name;type:varchar(80);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(80);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Crew) TableName() string {
	return "crew"
}

// FullName is derived, never stored
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
