package gorm

import "time"

// Order groups the tickets bought in one booking
type Order struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;<-:create"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tickets []Ticket `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Ticket is one seat on one flight. (flight_id, row, seat) is unique.
type Ticket struct {
	ID       uint `gorm:"column:id;primaryKey"`
	Row      int  `gorm:"column:row;not null;uniqueIndex:idx_tickets_flight_row_seat,priority:2"`
	Seat     int  `gorm:"column:seat;not null;uniqueIndex:idx_tickets_flight_row_seat,priority:3"`
	FlightID uint `gorm:"column:flight_id;not null;index;uniqueIndex:idx_tickets_flight_row_seat,priority:1"`
	OrderID  uint `gorm:"column:order_id;not null;index"`

	// Relationships
	Flight *Flight `gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}
