package entities

// BookingTotals is a row count snapshot across the booking tables
type BookingTotals struct {
	Airports int64 `db:"airports" json:"airports"`
	Routes   int64 `db:"routes" json:"routes"`
	Flights  int64 `db:"flights" json:"flights"`
	Orders   int64 `db:"orders" json:"orders"`
	Tickets  int64 `db:"tickets" json:"tickets"`
}

// FlightOccupancy is the seat usage of one flight
type FlightOccupancy struct {
	FlightID uint  `db:"flight_id" json:"flight_id"`
	Capacity int64 `db:"capacity" json:"capacity"`
	Taken    int64 `db:"taken" json:"taken"`
}

func (o FlightOccupancy) Available() int64 {
	return o.Capacity - o.Taken
}
