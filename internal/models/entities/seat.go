package entities

// SeatGeometry is the valid coordinate space of an airplane's cabin
type SeatGeometry struct {
	FlightID   uint
	Rows       int
	SeatsInRow int
}

func (g SeatGeometry) Capacity() int {
	return g.Rows * g.SeatsInRow
}

// SeatKey identifies a seat within a single flight
type SeatKey struct {
	Row  int `json:"row" db:"row"`
	Seat int `json:"seat" db:"seat"`
}

// SeatSet is the set of seats already booked on one flight
type SeatSet map[SeatKey]struct{}

func NewSeatSet(keys ...SeatKey) SeatSet {
	s := make(SeatSet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s SeatSet) Add(k SeatKey) {
	s[k] = struct{}{}
}

func (s SeatSet) Contains(k SeatKey) bool {
	_, ok := s[k]
	return ok
}

// Union returns a new set with the members of both
func (s SeatSet) Union(other SeatSet) SeatSet {
	out := make(SeatSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}
