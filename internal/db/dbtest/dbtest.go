// Package dbtest opens throwaway sqlite databases with the full schema for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"airport-booking/skyport/internal/db"
	gormModels "airport-booking/skyport/internal/models/gorm"

	"gorm.io/gorm"
)

// NewMemoryDB returns a migrated in-memory database on a single connection
func NewMemoryDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.InitSQLiteORM(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	closeOnCleanup(t, gdb)
	return gdb
}

// NewFileDB returns a migrated file backed database that allows several connections.
// Transactions take the write lock up front and wait for each other, so concurrent
// bookings serialize the way they would on Postgres.
func NewFileDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "skyport.db")
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=10000&_journal_mode=WAL", path)

	gdb, err := db.InitSQLiteORM(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(8)

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	closeOnCleanup(t, gdb)
	return gdb
}

func closeOnCleanup(t testing.TB, gdb *gorm.DB) {
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
}

// Fixture is a small but complete booking graph
type Fixture struct {
	Customer     gormModels.User
	OtherUser    gormModels.User
	Admin        gormModels.User
	Source       gormModels.Airport
	Destination  gormModels.Airport
	AirplaneType gormModels.AirplaneType
	Airplane     gormModels.Airplane
	Route        gormModels.Route
	Crew         gormModels.Crew
	Flight       gormModels.Flight
}

// Seed creates users, a 5x4 airplane and one flight with no tickets
func Seed(t testing.TB, gdb *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{
		Customer:     gormModels.User{Email: "customer@example.com", PasswordHash: "x", IsActive: true},
		OtherUser:    gormModels.User{Email: "other@example.com", PasswordHash: "x", IsActive: true},
		Admin:        gormModels.User{Email: "admin@example.com", PasswordHash: "x", IsStaff: true, IsActive: true},
		Source:       gormModels.Airport{Name: "Boryspil", ClosestBigCity: "Kyiv"},
		Destination:  gormModels.Airport{Name: "Heathrow", ClosestBigCity: "London"},
		AirplaneType: gormModels.AirplaneType{Name: "A320"},
		Crew:         gormModels.Crew{FirstName: "Alice", LastName: "Smith"},
	}

	mustCreate(t, gdb, &f.Customer)
	mustCreate(t, gdb, &f.OtherUser)
	mustCreate(t, gdb, &f.Admin)
	mustCreate(t, gdb, &f.Source)
	mustCreate(t, gdb, &f.Destination)
	mustCreate(t, gdb, &f.AirplaneType)
	mustCreate(t, gdb, &f.Crew)

	f.Airplane = gormModels.Airplane{Name: "UR-PSA", Rows: 5, SeatsInRow: 4, AirplaneTypeID: f.AirplaneType.ID}
	mustCreate(t, gdb, &f.Airplane)

	f.Route = gormModels.Route{SourceID: f.Source.ID, DestinationID: f.Destination.ID, Distance: 2200}
	mustCreate(t, gdb, &f.Route)

	departure := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	f.Flight = gormModels.Flight{
		RouteID:       f.Route.ID,
		AirplaneID:    f.Airplane.ID,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(3 * time.Hour),
		Members:       []gormModels.Crew{f.Crew},
	}
	mustCreate(t, gdb, &f.Flight)

	return f
}

// AddTicket books a seat directly, bypassing validation
func AddTicket(t testing.TB, gdb *gorm.DB, userID, flightID uint, row, seat int) gormModels.Ticket {
	t.Helper()

	order := gormModels.Order{UserID: userID}
	if err := gdb.Omit("User", "Tickets").Create(&order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	ticket := gormModels.Ticket{OrderID: order.ID, FlightID: flightID, Row: row, Seat: seat}
	if err := gdb.Omit("Flight").Create(&ticket).Error; err != nil {
		t.Fatalf("failed to create ticket: %v", err)
	}
	return ticket
}

// Count returns the number of rows of a model
func Count(t testing.TB, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	return n
}

func mustCreate(t testing.TB, gdb *gorm.DB, value interface{}) {
	t.Helper()
	if err := gdb.Create(value).Error; err != nil {
		t.Fatalf("failed to seed %T: %v", value, err)
	}
}
