package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/dbtest"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/dtos"
	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, event entities.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// staleInventory never sees seats taken inside the booking transaction,
// which is what a concurrent commit looks like to the loser of a race
type staleInventory struct {
	SeatInventory
}

func (s staleInventory) TakenSeatsTx(ctx context.Context, tx *gorm.DB, flightID uint) (entities.SeatSet, error) {
	if tx != nil {
		return entities.NewSeatSet(), nil
	}
	return s.SeatInventory.TakenSeatsTx(ctx, tx, flightID)
}

type orderHarness struct {
	db        *gorm.DB
	service   *OrderService
	tickets   *repositories.TicketRepository
	publisher *recordingPublisher
	metrics   *metrics.MetricsRegistry
}

func newOrderHarness(gdb *gorm.DB, wrap func(SeatInventory) SeatInventory) *orderHarness {
	flights := repositories.NewFlightRepository(gdb)
	tickets := repositories.NewTicketRepository(gdb)
	orders := repositories.NewOrderRepository(gdb)

	inventory := NewSeatInventory(flights, tickets)
	if wrap != nil {
		inventory = wrap(inventory)
	}

	h := &orderHarness{
		db:        gdb,
		tickets:   tickets,
		publisher: &recordingPublisher{},
		metrics:   metrics.NewMetricsRegistry(prometheus.NewRegistry()),
	}
	h.service = NewOrderService(gdb, inventory, NewOrderStore(orders, tickets), orders, tickets, h.publisher, h.metrics)
	return h
}

func (h *orderHarness) available(t *testing.T, flight gormModels.Flight, capacity int) int {
	t.Helper()
	counts, err := h.tickets.CountByFlights(context.Background(), []uint{flight.ID})
	require.NoError(t, err)
	return capacity - counts[flight.ID]
}

func requireOrderRejection(t *testing.T, err error) *OrderValidationError {
	t.Helper()
	var rejected *OrderValidationError
	require.True(t, errors.As(err, &rejected), "expected *OrderValidationError, got %v", err)
	return rejected
}

func TestCreateOrder_OccupiedSeat(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)

	order, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 1, Seat: 1, Flight: fx.Flight.ID},
	})

	assert.Nil(t, order)
	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		0: {constants.FieldOccupancy: "seat already occupied"},
	}, rejected.Tickets)
	assert.True(t, rejected.HasOccupancyConflict())
	assert.Equal(t, 19, h.available(t, fx.Flight, 20))
}

func TestCreateOrder_OutOfRangeSeat(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)

	_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 10, Seat: 5, Flight: fx.Flight.ID},
	})

	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		0: {
			constants.FieldRow:  "out of range (1-5)",
			constants.FieldSeat: "out of range (1-4)",
		},
	}, rejected.Tickets)
	assert.False(t, rejected.HasOccupancyConflict())
}

func TestCreateOrder_Success(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)
	require.Equal(t, 19, h.available(t, fx.Flight, 20))

	order, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 3, Flight: fx.Flight.ID},
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Tickets, 1)
	assert.NotZero(t, order.Tickets[0].ID)
	assert.Equal(t, order.ID, order.Tickets[0].OrderID)
	assert.Equal(t, 18, h.available(t, fx.Flight, 20))

	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.OrdersCreatedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.TicketsSoldTotal))

	require.Len(t, h.publisher.events, 1)
	event := h.publisher.events[0]
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, fx.Customer.ID, event.UserID)
	assert.Equal(t, []entities.OrderEventSeat{{FlightID: fx.Flight.ID, Row: 2, Seat: 3}}, event.Tickets)
}

func TestCreateOrder_EmptyTicketList(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)

	for _, candidates := range [][]dtos.TicketCandidate{nil, {}} {
		_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, candidates)

		rejected := requireOrderRejection(t, err)
		assert.Equal(t, "at least one ticket required", rejected.Message)
		assert.Empty(t, rejected.Tickets)
		assert.Equal(t, map[string]any{"tickets": "at least one ticket required"}, rejected.Details())
	}
	assert.Zero(t, dbtest.Count(t, gdb, &gormModels.Order{}))
	assert.Equal(t, float64(2), testutil.ToFloat64(h.metrics.OrderRejectionsTotal.WithLabelValues("empty")))
}

func TestCreateOrder_IsAtomic(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)

	_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 1, Flight: fx.Flight.ID},
		{Row: 1, Seat: 1, Flight: fx.Flight.ID},
		{Row: 3, Seat: 2, Flight: fx.Flight.ID},
	})

	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		1: {constants.FieldOccupancy: "seat already occupied"},
	}, rejected.Tickets)

	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Order{}))
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Empty(t, h.publisher.events)
}

func TestCreateOrder_DuplicateSeatWithinOrder(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)

	_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 2, Flight: fx.Flight.ID},
		{Row: 3, Seat: 3, Flight: fx.Flight.ID},
		{Row: 2, Seat: 2, Flight: fx.Flight.ID},
	})

	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		0: {constants.FieldOccupancy: "seat already occupied"},
		2: {constants.FieldOccupancy: "seat already occupied"},
	}, rejected.Tickets)
	assert.Zero(t, dbtest.Count(t, gdb, &gormModels.Ticket{}))
}

func TestCreateOrder_SameSeatOnDifferentFlights(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	second := gormModels.Flight{
		RouteID:       fx.Route.ID,
		AirplaneID:    fx.Airplane.ID,
		DepartureTime: fx.Flight.DepartureTime.Add(24 * time.Hour),
		ArrivalTime:   fx.Flight.ArrivalTime.Add(24 * time.Hour),
	}
	require.NoError(t, gdb.Omit("Route", "Airplane", "Members").Create(&second).Error)
	h := newOrderHarness(gdb, nil)

	order, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 2, Flight: fx.Flight.ID},
		{Row: 2, Seat: 2, Flight: second.ID},
	})

	require.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
}

func TestCreateOrder_UnknownFlight(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)

	_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 1, Seat: 1, Flight: fx.Flight.ID},
		{Row: 1, Seat: 1, Flight: 9999},
	})

	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		1: {constants.FieldFlight: "flight does not exist"},
	}, rejected.Tickets)
	assert.Zero(t, dbtest.Count(t, gdb, &gormModels.Ticket{}))
}

func TestCreateOrder_RejectionIsRepeatable(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)
	candidates := []dtos.TicketCandidate{{Row: 1, Seat: 1, Flight: fx.Flight.ID}, {Row: 0, Seat: 2, Flight: fx.Flight.ID}}

	_, first := h.service.CreateOrder(context.Background(), fx.Customer.ID, candidates)
	_, second := h.service.CreateOrder(context.Background(), fx.Customer.ID, candidates)

	assert.Equal(t, requireOrderRejection(t, first).Tickets, requireOrderRejection(t, second).Tickets)
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Ticket{}))
}

func TestCreateOrder_UniqueIndexBackstop(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, func(inner SeatInventory) SeatInventory {
		return staleInventory{SeatInventory: inner}
	})

	_, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 2, Flight: fx.Flight.ID},
		{Row: 1, Seat: 1, Flight: fx.Flight.ID},
	})

	rejected := requireOrderRejection(t, err)
	assert.Equal(t, map[int]SeatErrors{
		1: {constants.FieldOccupancy: "seat already occupied"},
	}, rejected.Tickets)
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Order{}))
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.SeatConflictsTotal))
}

func TestCreateOrder_ConcurrentOrdersForOneSeat(t *testing.T) {
	gdb := dbtest.NewFileDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)

	buyers := []uint{fx.Customer.ID, fx.OtherUser.ID}
	errs := make([]error, len(buyers))
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i, userID := range buyers {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			<-start
			_, errs[i] = h.service.CreateOrder(context.Background(), userID, []dtos.TicketCandidate{
				{Row: 4, Seat: 4, Flight: fx.Flight.ID},
			})
		}(i, userID)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		rejected := requireOrderRejection(t, err)
		assert.Equal(t, map[int]SeatErrors{
			0: {constants.FieldOccupancy: "seat already occupied"},
		}, rejected.Tickets)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Order{}))
}

func TestCreateOrder_PublishFailureKeepsOrder(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)
	h.publisher.err = errors.New("stream unavailable")

	order, err := h.service.CreateOrder(context.Background(), fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 5, Seat: 4, Flight: fx.Flight.ID},
	})

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(1), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.OrderEventsTotal.WithLabelValues("publish", "error")))
}

func TestOrderService_ListAndGet(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.OtherUser.ID, fx.Flight.ID, 1, 1)
	h := newOrderHarness(gdb, nil)
	ctx := context.Background()

	order, err := h.service.CreateOrder(ctx, fx.Customer.ID, []dtos.TicketCandidate{
		{Row: 2, Seat: 1, Flight: fx.Flight.ID},
		{Row: 2, Seat: 2, Flight: fx.Flight.ID},
	})
	require.NoError(t, err)

	page, err := h.service.ListOrders(ctx, fx.Customer.ID, NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "customer@example.com", page.Items[0].User)
	assert.Len(t, page.Items[0].Tickets, 2)

	detail, err := h.service.GetOrder(ctx, order.ID, fx.Customer.ID)
	require.NoError(t, err)
	require.Len(t, detail.Tickets, 2)
	assert.Equal(t, "Boryspil", detail.Tickets[0].Flight.Departure)
	assert.Equal(t, 3, detail.Tickets[0].Flight.TakenSeats)
	assert.Equal(t, 17, detail.Tickets[0].Flight.AvailableSeats)

	_, err = h.service.GetOrder(ctx, order.ID, fx.OtherUser.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_DeleteFreesSeats(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	h := newOrderHarness(gdb, nil)
	ctx := context.Background()
	candidates := []dtos.TicketCandidate{{Row: 3, Seat: 3, Flight: fx.Flight.ID}}

	order, err := h.service.CreateOrder(ctx, fx.Customer.ID, candidates)
	require.NoError(t, err)

	require.NoError(t, h.service.DeleteOrder(ctx, order.ID))
	assert.ErrorIs(t, h.service.DeleteOrder(ctx, order.ID), repositories.ErrNotFound)

	_, err = h.service.CreateOrder(ctx, fx.OtherUser.ID, candidates)
	assert.NoError(t, err)
}
