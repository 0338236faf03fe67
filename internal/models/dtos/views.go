package dtos

import (
	"time"

	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

// Each endpoint shape gets its own view struct; list and detail views differ on purpose.

type AirportView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func NewAirportView(a gormModels.Airport) AirportView {
	return AirportView{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity}
}

type AirplaneTypeView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewAirplaneTypeView(t gormModels.AirplaneType) AirplaneTypeView {
	return AirplaneTypeView{ID: t.ID, Name: t.Name}
}

type AirplaneView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

func NewAirplaneView(a gormModels.Airplane) AirplaneView {
	return AirplaneView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneType.Name,
	}
}

type CrewView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func NewCrewView(c gormModels.Crew) CrewView {
	return CrewView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

// RouteView is returned from create and update
type RouteView struct {
	ID          uint `json:"id"`
	Source      uint `json:"source"`
	Destination uint `json:"destination"`
	Distance    int  `json:"distance"`
}

func NewRouteView(r gormModels.Route) RouteView {
	return RouteView{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance}
}

type RouteListView struct {
	ID                 uint   `json:"id"`
	SourceAirport      string `json:"source_airport"`
	DestinationAirport string `json:"destination_airport"`
	Distance           int    `json:"distance"`
}

func NewRouteListView(r gormModels.Route) RouteListView {
	return RouteListView{
		ID:                 r.ID,
		SourceAirport:      r.Source.Name,
		DestinationAirport: r.Destination.Name,
		Distance:           r.Distance,
	}
}

type RouteDetailView struct {
	ID                        uint   `json:"id"`
	SourceAirport             string `json:"source_airport"`
	DestinationAirport        string `json:"destination_airport"`
	SourceClosestBigCity      string `json:"source_closest_big_city"`
	DestinationClosestBigCity string `json:"destination_closest_big_city"`
	Distance                  int    `json:"distance"`
	Name                      string `json:"name"`
}

func NewRouteDetailView(r gormModels.Route) RouteDetailView {
	return RouteDetailView{
		ID:                        r.ID,
		SourceAirport:             r.Source.Name,
		DestinationAirport:        r.Destination.Name,
		SourceClosestBigCity:      r.Source.ClosestBigCity,
		DestinationClosestBigCity: r.Destination.ClosestBigCity,
		Distance:                  r.Distance,
		Name:                      r.String(),
	}
}

// FlightView is returned from create and update
type FlightView struct {
	ID            uint      `json:"id"`
	Route         uint      `json:"route"`
	Airplane      uint      `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Members       []uint    `json:"members"`
}

func NewFlightView(f gormModels.Flight) FlightView {
	members := make([]uint, 0, len(f.Members))
	for _, m := range f.Members {
		members = append(members, m.ID)
	}
	return FlightView{
		ID:            f.ID,
		Route:         f.RouteID,
		Airplane:      f.AirplaneID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Members:       members,
	}
}

type FlightListView struct {
	ID             uint      `json:"id"`
	Route          uint      `json:"route"`
	Airplane       string    `json:"airplane"`
	AirplaneType   string    `json:"airplane_type"`
	TakenSeats     int       `json:"taken_seats"`
	AvailableSeats int       `json:"available_seats"`
	Departure      string    `json:"departure"`
	Arrival        string    `json:"arrival"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
}

// NewFlightListView expects Route.Source, Route.Destination and Airplane.AirplaneType loaded
func NewFlightListView(f gormModels.Flight, taken int) FlightListView {
	return FlightListView{
		ID:             f.ID,
		Route:          f.RouteID,
		Airplane:       f.Airplane.Name,
		AirplaneType:   f.Airplane.AirplaneType.Name,
		TakenSeats:     taken,
		AvailableSeats: f.Airplane.Capacity() - taken,
		Departure:      f.Route.Source.Name,
		Arrival:        f.Route.Destination.Name,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
	}
}

type FlightDetailView struct {
	ID             uint               `json:"id"`
	Name           string             `json:"name"`
	Route          uint               `json:"route"`
	Airplane       string             `json:"airplane"`
	AirplaneType   string             `json:"airplane_type"`
	Rows           int                `json:"rows"`
	SeatsInRow     int                `json:"seats_in_row"`
	Departure      string             `json:"departure"`
	Arrival        string             `json:"arrival"`
	DepartureTime  time.Time          `json:"departure_time"`
	ArrivalTime    time.Time          `json:"arrival_time"`
	Distance       int                `json:"distance"`
	Members        []string           `json:"members"`
	AvailableSeats int                `json:"available_seats"`
	TakenSeats     []entities.SeatKey `json:"taken_seats"`
}

func NewFlightDetailView(f gormModels.Flight, taken []entities.SeatKey) FlightDetailView {
	members := make([]string, 0, len(f.Members))
	for _, m := range f.Members {
		members = append(members, m.FullName())
	}
	if taken == nil {
		taken = []entities.SeatKey{}
	}
	return FlightDetailView{
		ID:             f.ID,
		Name:           f.String(),
		Route:          f.RouteID,
		Airplane:       f.Airplane.Name,
		AirplaneType:   f.Airplane.AirplaneType.Name,
		Rows:           f.Airplane.Rows,
		SeatsInRow:     f.Airplane.SeatsInRow,
		Departure:      f.Route.Source.Name,
		Arrival:        f.Route.Destination.Name,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Distance:       f.Route.Distance,
		Members:        members,
		AvailableSeats: f.Airplane.Capacity() - len(taken),
		TakenSeats:     taken,
	}
}

type TicketView struct {
	ID     uint `json:"id"`
	Row    int  `json:"row"`
	Seat   int  `json:"seat"`
	Flight uint `json:"flight"`
}

func NewTicketView(t gormModels.Ticket) TicketView {
	return TicketView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID}
}

func newTicketViews(tickets []gormModels.Ticket) []TicketView {
	out := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketView(t))
	}
	return out
}

// OrderView is returned from create
type OrderView struct {
	ID        uint         `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	User      uint         `json:"user"`
	Tickets   []TicketView `json:"tickets"`
}

func NewOrderView(o gormModels.Order) OrderView {
	return OrderView{ID: o.ID, CreatedAt: o.CreatedAt, User: o.UserID, Tickets: newTicketViews(o.Tickets)}
}

type OrderListView struct {
	ID        uint         `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	User      string       `json:"user"`
	Tickets   []TicketView `json:"tickets"`
}

// NewOrderListView expects User loaded
func NewOrderListView(o gormModels.Order) OrderListView {
	return OrderListView{ID: o.ID, CreatedAt: o.CreatedAt, User: o.User.Email, Tickets: newTicketViews(o.Tickets)}
}

type TicketDetailView struct {
	ID     uint           `json:"id"`
	Row    int            `json:"row"`
	Seat   int            `json:"seat"`
	Flight FlightListView `json:"flight"`
}

type OrderDetailView struct {
	ID        uint               `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	User      string             `json:"user"`
	Tickets   []TicketDetailView `json:"tickets"`
}

// NewOrderDetailView expects every ticket's Flight loaded with its route and airplane;
// takenByFlight holds the current ticket count per flight id
func NewOrderDetailView(o gormModels.Order, takenByFlight map[uint]int) OrderDetailView {
	tickets := make([]TicketDetailView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		view := TicketDetailView{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if t.Flight != nil {
			view.Flight = NewFlightListView(*t.Flight, takenByFlight[t.FlightID])
		}
		tickets = append(tickets, view)
	}
	return OrderDetailView{ID: o.ID, CreatedAt: o.CreatedAt, User: o.User.Email, Tickets: tickets}
}
