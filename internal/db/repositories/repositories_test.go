package repositories_test

import (
	"context"
	"testing"
	"time"

	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/dbtest"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/models/entities"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightRepository_SeatGeometry(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewFlightRepository(gdb)

	geometry, err := repo.SeatGeometryTx(context.Background(), nil, fx.Flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, geometry.Rows)
	assert.Equal(t, 4, geometry.SeatsInRow)
	assert.Equal(t, 20, geometry.Capacity())

	_, err = repo.SeatGeometryTx(context.Background(), nil, 9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFlightRepository_FindByIDLoadsRelations(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewFlightRepository(gdb)

	flight, err := repo.FindByID(context.Background(), fx.Flight.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boryspil", flight.Route.Source.Name)
	assert.Equal(t, "Heathrow", flight.Route.Destination.Name)
	assert.Equal(t, "A320", flight.Airplane.AirplaneType.Name)
	require.Len(t, flight.Members, 1)
	assert.Equal(t, "Alice Smith", flight.Members[0].FullName())
	assert.Equal(t, "Boryspil, Heathrow - A320", flight.String())
}

func TestTicketRepository_TakenSeats(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewTicketRepository(gdb)

	dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 2, 3)
	dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 1, 1)

	taken, err := repo.TakenSeatsTx(context.Background(), nil, fx.Flight.ID)
	require.NoError(t, err)
	assert.Len(t, taken, 2)
	assert.True(t, taken.Contains(entities.SeatKey{Row: 1, Seat: 1}))
	assert.True(t, taken.Contains(entities.SeatKey{Row: 2, Seat: 3}))
	assert.False(t, taken.Contains(entities.SeatKey{Row: 3, Seat: 2}))

	list, err := repo.TakenSeatList(context.Background(), fx.Flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []entities.SeatKey{{Row: 1, Seat: 1}, {Row: 2, Seat: 3}}, list)

	counts, err := repo.CountByFlights(context.Background(), []uint{fx.Flight.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[fx.Flight.ID])
	assert.Equal(t, 0, counts[9999])
}

func TestTicketRepository_UniqueSeatIndex(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewTicketRepository(gdb)
	orders := repositories.NewOrderRepository(gdb)

	dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 4, 4)

	order := gormModels.Order{UserID: fx.OtherUser.ID}
	require.NoError(t, orders.CreateTx(context.Background(), nil, &order))

	err := repo.CreateBatchTx(context.Background(), nil, []gormModels.Ticket{
		{OrderID: order.ID, FlightID: fx.Flight.ID, Row: 4, Seat: 4},
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestOrderRepository_FindForUserHidesOtherOwners(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewOrderRepository(gdb)

	ticket := dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 1, 2)

	order, err := repo.FindForUser(context.Background(), ticket.OrderID, fx.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "customer@example.com", order.User.Email)
	require.Len(t, order.Tickets, 1)
	require.NotNil(t, order.Tickets[0].Flight)
	assert.Equal(t, "Heathrow", order.Tickets[0].Flight.Route.Destination.Name)

	_, err = repo.FindForUser(context.Background(), ticket.OrderID, fx.OtherUser.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderRepository_DeleteCascadesToTickets(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewOrderRepository(gdb)

	ticket := dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 1, 2)

	require.NoError(t, repo.Delete(context.Background(), ticket.OrderID))
	assert.Equal(t, int64(0), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Equal(t, int64(0), dbtest.Count(t, gdb, &gormModels.Order{}))

	assert.ErrorIs(t, repo.Delete(context.Background(), ticket.OrderID), repositories.ErrNotFound)
}

func TestFlightRepository_DeleteCascadesToTickets(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewFlightRepository(gdb)

	dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 3, 3)

	require.NoError(t, repo.Delete(context.Background(), fx.Flight.ID))
	assert.Equal(t, int64(0), dbtest.Count(t, gdb, &gormModels.Ticket{}))
	assert.Equal(t, int64(0), dbtest.Count(t, gdb, &gormModels.Flight{}))
}

func TestReferenceDeletesAreProtected(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	ctx := context.Background()

	assert.ErrorIs(t, repositories.NewAirportRepository(gdb).Delete(ctx, fx.Source.ID), repositories.ErrProtected)
	assert.ErrorIs(t, repositories.NewAirplaneTypeRepository(gdb).Delete(ctx, fx.AirplaneType.ID), repositories.ErrProtected)
	assert.ErrorIs(t, repositories.NewAirplaneRepository(gdb).Delete(ctx, fx.Airplane.ID), repositories.ErrProtected)
	assert.ErrorIs(t, repositories.NewRouteRepository(gdb).Delete(ctx, fx.Route.ID), repositories.ErrProtected)
	assert.ErrorIs(t, repositories.NewAirportRepository(gdb).Delete(ctx, 9999), repositories.ErrNotFound)

	// Crew are detached from rosters rather than protected
	require.NoError(t, repositories.NewCrewRepository(gdb).Delete(ctx, fx.Crew.ID))
	flight, err := repositories.NewFlightRepository(gdb).FindByID(ctx, fx.Flight.ID)
	require.NoError(t, err)
	assert.Empty(t, flight.Members)
}

func TestStatsRepository(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, fx.Customer.ID, fx.Flight.ID, 1, 1)

	sqlxDB, err := db.SQLX(gdb)
	require.NoError(t, err)
	repo := repositories.NewStatsRepository(sqlxDB)

	totals, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Airports)
	assert.Equal(t, int64(1), totals.Flights)
	assert.Equal(t, int64(1), totals.Orders)
	assert.Equal(t, int64(1), totals.Tickets)

	occupancy, err := repo.UpcomingOccupancy(context.Background(), time.Now().UTC(), 10)
	require.NoError(t, err)
	require.Len(t, occupancy, 1)
	assert.Equal(t, fx.Flight.ID, occupancy[0].FlightID)
	assert.Equal(t, int64(20), occupancy[0].Capacity)
	assert.Equal(t, int64(19), occupancy[0].Available())
}

func TestUserRepository_SetStaff(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	fx := dbtest.Seed(t, gdb)
	repo := repositories.NewUserRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.SetStaff(ctx, fx.Customer.ID, true))
	user, err := repo.FindByEmail(ctx, " Customer@Example.com ")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)

	assert.ErrorIs(t, repo.SetStaff(ctx, 9999, true), repositories.ErrNotFound)
}
