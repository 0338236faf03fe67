package services

import (
	"fmt"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/models/entities"
)

// ValidateSeat checks one requested seat against the cabin layout and the seats
// already taken. All failing checks are reported together; nil means the seat
// can be booked.
func ValidateSeat(geometry entities.SeatGeometry, row, seat int, taken entities.SeatSet) SeatErrors {
	errs := SeatErrors{}

	if taken.Contains(entities.SeatKey{Row: row, Seat: seat}) {
		errs[constants.FieldOccupancy] = constants.MsgSeatOccupied
	}

	if seat < 1 || seat > geometry.SeatsInRow {
		errs[constants.FieldSeat] = fmt.Sprintf(constants.MsgOutOfRangeFormat, geometry.SeatsInRow)
	}

	if row < 1 || row > geometry.Rows {
		errs[constants.FieldRow] = fmt.Sprintf(constants.MsgOutOfRangeFormat, geometry.Rows)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
