package services

import (
	"testing"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/models/entities"

	"github.com/stretchr/testify/assert"
)

var cabin = entities.SeatGeometry{FlightID: 1, Rows: 5, SeatsInRow: 4}

func TestValidateSeat_AcceptsEveryFreeSeatInRange(t *testing.T) {
	taken := entities.NewSeatSet(entities.SeatKey{Row: 1, Seat: 1})

	for row := 1; row <= cabin.Rows; row++ {
		for seat := 1; seat <= cabin.SeatsInRow; seat++ {
			if row == 1 && seat == 1 {
				continue
			}
			assert.Nil(t, ValidateSeat(cabin, row, seat, taken), "row %d seat %d", row, seat)
		}
	}
}

func TestValidateSeat_RowOutOfRange(t *testing.T) {
	for _, row := range []int{0, -1, cabin.Rows + 1, 100} {
		for _, seat := range []int{0, 1, cabin.SeatsInRow, cabin.SeatsInRow + 1} {
			errs := ValidateSeat(cabin, row, seat, entities.NewSeatSet())
			assert.Equal(t, "out of range (1-5)", errs[constants.FieldRow], "row %d seat %d", row, seat)
		}
	}
}

func TestValidateSeat_SeatOutOfRange(t *testing.T) {
	for _, seat := range []int{0, -3, cabin.SeatsInRow + 1} {
		for _, row := range []int{0, 1, cabin.Rows, cabin.Rows + 1} {
			errs := ValidateSeat(cabin, row, seat, entities.NewSeatSet())
			assert.Equal(t, "out of range (1-4)", errs[constants.FieldSeat], "row %d seat %d", row, seat)
		}
	}
}

func TestValidateSeat_Occupied(t *testing.T) {
	taken := entities.NewSeatSet(entities.SeatKey{Row: 1, Seat: 1})

	errs := ValidateSeat(cabin, 1, 1, taken)
	assert.Equal(t, SeatErrors{constants.FieldOccupancy: "seat already occupied"}, errs)
}

func TestValidateSeat_ReportsEveryFailure(t *testing.T) {
	errs := ValidateSeat(cabin, 10, 5, entities.NewSeatSet())
	assert.Equal(t, SeatErrors{
		constants.FieldRow:  "out of range (1-5)",
		constants.FieldSeat: "out of range (1-4)",
	}, errs)

	// An out of range seat can still be recorded as taken by a corrupt row; both are reported
	taken := entities.NewSeatSet(entities.SeatKey{Row: 0, Seat: 9})
	errs = ValidateSeat(cabin, 0, 9, taken)
	assert.Len(t, errs, 3)
}

func TestValidateSeat_RejectionIsRepeatable(t *testing.T) {
	taken := entities.NewSeatSet(entities.SeatKey{Row: 2, Seat: 2})

	first := ValidateSeat(cabin, 2, 2, taken)
	second := ValidateSeat(cabin, 2, 2, taken)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
