package workers

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"airport-booking/skyport/internal/db/dbtest"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/jobs"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queuedMessage struct {
	id    string
	event *entities.OrderCreatedEvent
	err   error
}

type fakeSource struct {
	mu       sync.Mutex
	queue    []queuedMessage
	acked    []string
	stale    []queuedMessage
	trimmed  int
	groupErr error
}

func (f *fakeSource) CreateConsumerGroup(context.Context, string) error { return f.groupErr }

func (f *fakeSource) Dequeue(ctx context.Context, _, _ string, _ time.Duration) (*entities.OrderCreatedEvent, string, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		msg := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return msg.event, msg.id, msg.err
	}
	f.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Millisecond):
	}
	return nil, "", nil
}

func (f *fakeSource) Ack(_ context.Context, _, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, messageID)
	return nil
}

func (f *fakeSource) ClaimStale(context.Context, string, string, time.Duration) ([]*entities.OrderCreatedEvent, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []*entities.OrderCreatedEvent
	var ids []string
	for _, m := range f.stale {
		events = append(events, m.event)
		ids = append(ids, m.id)
	}
	f.stale = nil
	return events, ids, nil
}

func (f *fakeSource) PendingCount(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeSource) Trim(context.Context, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trimmed++
	return nil
}

func (f *fakeSource) ackedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.acked...)
}

func TestOrderEventWorker_ProcessesAndAcks(t *testing.T) {
	source := &fakeSource{queue: []queuedMessage{
		{id: "1-0", event: &entities.OrderCreatedEvent{OrderID: 1}},
		{id: "2-0", err: errors.New("bad payload")},
		{id: "3-0", event: &entities.OrderCreatedEvent{OrderID: 3}},
	}}
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	var mu sync.Mutex
	var handled []uint
	handler := func(_ context.Context, e *entities.OrderCreatedEvent) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, e.OrderID)
		if e.OrderID == 3 {
			return errors.New("downstream unavailable")
		}
		return nil
	}

	worker := NewOrderEventWorker("test", "group", source, handler, m)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Start(ctx, 1) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	// the failed event stays pending for the reclaimer
	assert.ElementsMatch(t, []string{"1-0", "2-0"}, source.ackedIDs())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderEventsTotal.WithLabelValues("consume", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderEventsTotal.WithLabelValues("consume", "invalid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderEventsTotal.WithLabelValues("consume", "error")))
}

func TestOrderEventWorker_ConsumerGroupFailure(t *testing.T) {
	source := &fakeSource{groupErr: errors.New("NOAUTH")}
	worker := NewOrderEventWorker("test", "group", source, func(context.Context, *entities.OrderCreatedEvent) error { return nil }, nil)

	err := worker.Start(context.Background(), 1)
	assert.ErrorContains(t, err, "NOAUTH")
}

func TestOrderEventWorker_ReclaimRetriesStale(t *testing.T) {
	source := &fakeSource{stale: []queuedMessage{{id: "9-0", event: &entities.OrderCreatedEvent{OrderID: 9}}}}
	worker := NewOrderEventWorker("test", "group", source, func(context.Context, *entities.OrderCreatedEvent) error { return nil }, nil)

	worker.reclaim(context.Background(), "reclaimer")

	assert.Equal(t, []string{"9-0"}, source.ackedIDs())
	assert.Equal(t, 1, source.trimmed)
}

type noUpcomingFlights struct{}

func (noUpcomingFlights) Upcoming(context.Context) ([]entities.FlightOccupancy, error) {
	return nil, nil
}

func TestSeatGaugeHandler(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	f := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, f.Customer.ID, f.Flight.ID, 1, 1)
	dbtest.AddTicket(t, gdb, f.Customer.ID, f.Flight.ID, 2, 3)

	departed := gormModels.Flight{
		RouteID:       f.Route.ID,
		AirplaneID:    f.Airplane.ID,
		DepartureTime: time.Now().UTC().Add(-48 * time.Hour),
		ArrivalTime:   time.Now().UTC().Add(-45 * time.Hour),
	}
	require.NoError(t, gdb.Omit("Route", "Airplane", "Members").Create(&departed).Error)
	dbtest.AddTicket(t, gdb, f.Customer.ID, departed.ID, 1, 1)

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	inventory := jobs.NewSeatInventoryJob(noUpcomingFlights{}, m)

	handle := NewSeatGaugeHandler(repositories.NewFlightRepository(gdb), repositories.NewTicketRepository(gdb), inventory)
	err := handle(context.Background(), &entities.OrderCreatedEvent{
		OrderID: 1,
		Tickets: []entities.OrderEventSeat{
			{FlightID: f.Flight.ID, Row: 2, Seat: 3},
			{FlightID: departed.ID, Row: 1, Seat: 1},
			{FlightID: 9999, Row: 1, Seat: 1},
		},
	})
	require.NoError(t, err)

	label := strconv.FormatUint(uint64(f.Flight.ID), 10)
	assert.Equal(t, 1, testutil.CollectAndCount(m.FlightAvailableSeats))
	assert.Equal(t, float64(18), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues(label)))

	// the next inventory run no longer lists the flight, so its label goes away
	require.NoError(t, inventory.Run(context.Background()))
	assert.Equal(t, 0, testutil.CollectAndCount(m.FlightAvailableSeats))
}
