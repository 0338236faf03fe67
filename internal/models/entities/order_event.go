package entities

import "time"

// OrderCreatedEvent is published once an order and its tickets are committed
type OrderCreatedEvent struct {
	OrderID   uint             `json:"order_id"`
	UserID    uint             `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []OrderEventSeat `json:"tickets"`
}

type OrderEventSeat struct {
	FlightID uint `json:"flight_id"`
	Row      int  `json:"row"`
	Seat     int  `json:"seat"`
}
