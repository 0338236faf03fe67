package workers

import (
	"context"
	"errors"
	"time"

	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/entities"
)

// SeatGauge stores available seats per flight. jobs.SeatInventoryJob satisfies it.
type SeatGauge interface {
	SetAvailable(flightID uint, available int)
}

// NewSeatGaugeHandler returns a handler that refreshes the available seat gauge
// of every upcoming flight an order touched
func NewSeatGaugeHandler(flights *repositories.FlightRepository, tickets *repositories.TicketRepository, gauge SeatGauge) OrderEventHandler {
	return func(ctx context.Context, event *entities.OrderCreatedEvent) error {
		flightIDs := make([]uint, 0, len(event.Tickets))
		seen := make(map[uint]bool)
		for _, t := range event.Tickets {
			if !seen[t.FlightID] {
				seen[t.FlightID] = true
				flightIDs = append(flightIDs, t.FlightID)
			}
		}

		taken, err := tickets.CountByFlights(ctx, flightIDs)
		if err != nil {
			return err
		}

		for _, id := range flightIDs {
			flight, err := flights.FindByID(ctx, id)
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !flight.DepartureTime.After(time.Now()) {
				continue
			}
			gauge.SetAvailable(id, flight.Airplane.Capacity()-taken[id])
		}

		logging.Info("Order confirmed",
			"order_id", event.OrderID,
			"user_id", event.UserID,
			"tickets", len(event.Tickets),
			"flights", len(flightIDs),
		)
		return nil
	}
}
