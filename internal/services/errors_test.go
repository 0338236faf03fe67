package services

import (
	"encoding/json"
	"testing"

	"airport-booking/skyport/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderValidationError_DetailsInSubmissionOrder(t *testing.T) {
	rejected := &OrderValidationError{Tickets: map[int]SeatErrors{}}
	for _, index := range []int{11, 2, 10, 0} {
		rejected.Tickets[index] = SeatErrors{constants.FieldRow: "out of range (1-5)"}
	}

	raw, err := json.Marshal(rejected.Details())
	require.NoError(t, err)

	var body struct {
		Tickets []TicketErrors `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	indexes := make([]int, 0, len(body.Tickets))
	for _, ticket := range body.Tickets {
		indexes = append(indexes, ticket.Index)
	}
	assert.Equal(t, []int{0, 2, 10, 11}, indexes)
}
