package dtos

import "time"

type RegisterUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AirportRequest struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type AirplaneTypeRequest struct {
	Name string `json:"name"`
}

// AirplaneRequest references its type by name
type AirplaneRequest struct {
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType string `json:"airplane_type"`
}

type RouteRequest struct {
	Source      uint `json:"source"`
	Destination uint `json:"destination"`
	Distance    int  `json:"distance"`
}

type CrewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type FlightRequest struct {
	Route         uint      `json:"route"`
	Airplane      uint      `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Members       []uint    `json:"members"`
}

// TicketCandidate is one requested seat in an order
type TicketCandidate struct {
	Row    int  `json:"row"`
	Seat   int  `json:"seat"`
	Flight uint `json:"flight"`
}

type OrderRequest struct {
	Tickets []TicketCandidate `json:"tickets"`
}
