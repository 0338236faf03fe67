package gorm

import (
	"time"

	"airport-booking/skyport/internal/constants"
)

type User struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;type:varchar(150)"`
	LastName     string    `gorm:"column:last_name;type:varchar(150)"`
	IsStaff      bool      `gorm:"column:is_staff;default:false"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u User) Role() constants.Role {
	return constants.RoleForStaff(u.IsStaff)
}
