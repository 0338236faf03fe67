package services

import (
	"context"
	"errors"
	"fmt"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/dtos"
	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

// SeatInventory answers seat questions about a flight. A nil tx reads outside any transaction.
type SeatInventory interface {
	SeatGeometryTx(ctx context.Context, tx *gorm.DB, flightID uint) (*entities.SeatGeometry, error)
	TakenSeatsTx(ctx context.Context, tx *gorm.DB, flightID uint) (entities.SeatSet, error)
}

// OrderStore writes an order and its tickets inside the caller's transaction
type OrderStore interface {
	CreateTx(ctx context.Context, tx *gorm.DB, order *gormModels.Order) error
	CreateTicketsTx(ctx context.Context, tx *gorm.DB, tickets []gormModels.Ticket) error
}

// OrderEventPublisher announces committed orders
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event entities.OrderCreatedEvent) error
}

type repositoryInventory struct {
	flights *repositories.FlightRepository
	tickets *repositories.TicketRepository
}

// NewSeatInventory backs SeatInventory with the flight and ticket tables
func NewSeatInventory(flights *repositories.FlightRepository, tickets *repositories.TicketRepository) SeatInventory {
	return &repositoryInventory{flights: flights, tickets: tickets}
}

func (i *repositoryInventory) SeatGeometryTx(ctx context.Context, tx *gorm.DB, flightID uint) (*entities.SeatGeometry, error) {
	return i.flights.SeatGeometryTx(ctx, tx, flightID)
}

func (i *repositoryInventory) TakenSeatsTx(ctx context.Context, tx *gorm.DB, flightID uint) (entities.SeatSet, error) {
	return i.tickets.TakenSeatsTx(ctx, tx, flightID)
}

type repositoryOrderStore struct {
	orders  *repositories.OrderRepository
	tickets *repositories.TicketRepository
}

// NewOrderStore backs OrderStore with the order and ticket tables
func NewOrderStore(orders *repositories.OrderRepository, tickets *repositories.TicketRepository) OrderStore {
	return &repositoryOrderStore{orders: orders, tickets: tickets}
}

func (s *repositoryOrderStore) CreateTx(ctx context.Context, tx *gorm.DB, order *gormModels.Order) error {
	return s.orders.CreateTx(ctx, tx, order)
}

func (s *repositoryOrderStore) CreateTicketsTx(ctx context.Context, tx *gorm.DB, tickets []gormModels.Ticket) error {
	return s.tickets.CreateBatchTx(ctx, tx, tickets)
}

// OrderService books orders. Every order and all of its tickets are committed in a
// single transaction or not at all.
type OrderService struct {
	db        *gorm.DB
	inventory SeatInventory
	store     OrderStore
	orders    *repositories.OrderRepository
	tickets   *repositories.TicketRepository
	publisher OrderEventPublisher
	metrics   *metrics.MetricsRegistry
}

// NewOrderService creates an order service. publisher and m may be nil.
func NewOrderService(
	db *gorm.DB,
	inventory SeatInventory,
	store OrderStore,
	orders *repositories.OrderRepository,
	tickets *repositories.TicketRepository,
	publisher OrderEventPublisher,
	m *metrics.MetricsRegistry,
) *OrderService {
	return &OrderService{
		db:        db,
		inventory: inventory,
		store:     store,
		orders:    orders,
		tickets:   tickets,
		publisher: publisher,
		metrics:   m,
	}
}

// flightSeats is the per-flight state loaded once per order
type flightSeats struct {
	geometry *entities.SeatGeometry
	taken    entities.SeatSet
	missing  bool
}

// CreateOrder validates every candidate and persists the order with one ticket per
// candidate. Rejections come back as *OrderValidationError.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, candidates []dtos.TicketCandidate) (*gormModels.Order, error) {
	if len(candidates) == 0 {
		s.recordRejection("empty")
		return nil, &OrderValidationError{Message: constants.MsgTicketsRequired}
	}

	var order *gormModels.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rejected, err := s.validateCandidates(ctx, tx, candidates)
		if err != nil {
			return err
		}
		if rejected != nil {
			return rejected
		}

		created := gormModels.Order{UserID: userID}
		if err := s.store.CreateTx(ctx, tx, &created); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		tickets := make([]gormModels.Ticket, 0, len(candidates))
		for _, c := range candidates {
			tickets = append(tickets, gormModels.Ticket{
				OrderID:  created.ID,
				FlightID: c.Flight,
				Row:      c.Row,
				Seat:     c.Seat,
			})
		}
		if err := s.store.CreateTicketsTx(ctx, tx, tickets); err != nil {
			return fmt.Errorf("failed to create tickets: %w", err)
		}

		created.Tickets = tickets
		order = &created
		return nil
	})

	if err != nil {
		var rejected *OrderValidationError
		if errors.As(err, &rejected) {
			s.recordRejection("validation")
			return nil, rejected
		}
		if db.IsUniqueViolation(err) {
			// Another booking committed one of these seats after we read the taken set
			s.recordRejection("seat_conflict")
			if s.metrics != nil {
				s.metrics.SeatConflictsTotal.Inc()
			}
			logging.Warn("Order lost a seat race", "user_id", userID, "error", err)
			return nil, s.occupancyConflict(ctx, candidates)
		}
		logging.Error("Failed to create order", "user_id", userID, "error", err)
		return nil, err
	}

	s.afterCommit(ctx, order)
	return order, nil
}

// validateCandidates runs the seat validator over the candidates in submitted order.
// Seats requested more than once in the same order count as taken for every occurrence.
func (s *OrderService) validateCandidates(ctx context.Context, tx *gorm.DB, candidates []dtos.TicketCandidate) (*OrderValidationError, error) {
	requested := make(map[uint]map[entities.SeatKey]int)
	for _, c := range candidates {
		if requested[c.Flight] == nil {
			requested[c.Flight] = make(map[entities.SeatKey]int)
		}
		requested[c.Flight][entities.SeatKey{Row: c.Row, Seat: c.Seat}]++
	}

	flights := make(map[uint]*flightSeats)
	rejected := make(map[int]SeatErrors)

	for i, c := range candidates {
		state, ok := flights[c.Flight]
		if !ok {
			var err error
			state, err = s.loadFlightSeats(ctx, tx, c.Flight, requested[c.Flight])
			if err != nil {
				return nil, err
			}
			flights[c.Flight] = state
		}

		if state.missing {
			rejected[i] = SeatErrors{constants.FieldFlight: constants.MsgFlightDoesNotExist}
			continue
		}

		if errs := ValidateSeat(*state.geometry, c.Row, c.Seat, state.taken); errs != nil {
			rejected[i] = errs
		}
	}

	if len(rejected) > 0 {
		return &OrderValidationError{Tickets: rejected}, nil
	}
	return nil, nil
}

func (s *OrderService) loadFlightSeats(ctx context.Context, tx *gorm.DB, flightID uint, requested map[entities.SeatKey]int) (*flightSeats, error) {
	geometry, err := s.inventory.SeatGeometryTx(ctx, tx, flightID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &flightSeats{missing: true}, nil
	}
	if err != nil {
		return nil, err
	}

	taken, err := s.inventory.TakenSeatsTx(ctx, tx, flightID)
	if err != nil {
		return nil, err
	}

	repeated := entities.NewSeatSet()
	for key, n := range requested {
		if n > 1 {
			repeated.Add(key)
		}
	}

	return &flightSeats{geometry: geometry, taken: taken.Union(repeated)}, nil
}

// occupancyConflict builds the rejection for an order that hit the seat index.
// Candidates whose seats are now taken are flagged; if the winner cannot be seen,
// every candidate is flagged.
func (s *OrderService) occupancyConflict(ctx context.Context, candidates []dtos.TicketCandidate) *OrderValidationError {
	rejected := make(map[int]SeatErrors)
	taken := make(map[uint]entities.SeatSet)

	for i, c := range candidates {
		set, ok := taken[c.Flight]
		if !ok {
			fresh, err := s.inventory.TakenSeatsTx(ctx, nil, c.Flight)
			if err != nil {
				logging.Warn("Failed to re-read taken seats", "flight_id", c.Flight, "error", err)
				fresh = entities.NewSeatSet()
			}
			taken[c.Flight] = fresh
			set = fresh
		}
		if set.Contains(entities.SeatKey{Row: c.Row, Seat: c.Seat}) {
			rejected[i] = SeatErrors{constants.FieldOccupancy: constants.MsgSeatOccupied}
		}
	}

	if len(rejected) == 0 {
		for i := range candidates {
			rejected[i] = SeatErrors{constants.FieldOccupancy: constants.MsgSeatOccupied}
		}
	}
	return &OrderValidationError{Tickets: rejected}
}

func (s *OrderService) afterCommit(ctx context.Context, order *gormModels.Order) {
	if s.metrics != nil {
		s.metrics.OrdersCreatedTotal.Inc()
		s.metrics.TicketsSoldTotal.Add(float64(len(order.Tickets)))
	}

	logging.Info("Order created", "order_id", order.ID, "user_id", order.UserID, "tickets", len(order.Tickets))

	if s.publisher == nil {
		return
	}

	event := entities.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]entities.OrderEventSeat, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, entities.OrderEventSeat{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.recordEvent("publish", "error")
		logging.Warn("Failed to publish order event", "order_id", order.ID, "error", err)
		return
	}
	s.recordEvent("publish", "ok")
}

func (s *OrderService) recordRejection(reason string) {
	if s.metrics != nil {
		s.metrics.OrderRejectionsTotal.WithLabelValues(reason).Inc()
	}
}

func (s *OrderService) recordEvent(stage, outcome string) {
	if s.metrics != nil {
		s.metrics.OrderEventsTotal.WithLabelValues(stage, outcome).Inc()
	}
}

// ListOrders returns one page of the user's orders
func (s *OrderService) ListOrders(ctx context.Context, userID uint, page Pagination) (*dtos.Page[dtos.OrderListView], error) {
	orders, total, err := s.orders.ListByUser(ctx, userID, page.ListOptions())
	if err != nil {
		return nil, err
	}

	items := make([]dtos.OrderListView, 0, len(orders))
	for _, o := range orders {
		items = append(items, dtos.NewOrderListView(o))
	}
	return newPage(page, items, total), nil
}

// GetOrder returns an order owned by userID; other users' orders are not found
func (s *OrderService) GetOrder(ctx context.Context, id, userID uint) (*dtos.OrderDetailView, error) {
	order, err := s.orders.FindForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	flightIDs := make([]uint, 0, len(order.Tickets))
	seen := make(map[uint]bool)
	for _, t := range order.Tickets {
		if !seen[t.FlightID] {
			seen[t.FlightID] = true
			flightIDs = append(flightIDs, t.FlightID)
		}
	}

	taken, err := s.tickets.CountByFlights(ctx, flightIDs)
	if err != nil {
		return nil, err
	}

	view := dtos.NewOrderDetailView(*order, taken)
	return &view, nil
}

// DeleteOrder removes an order and frees its seats
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	logging.Info("Order deleted", "order_id", id)
	return nil
}
