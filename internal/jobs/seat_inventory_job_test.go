package jobs

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/dbtest"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/entities"
	"airport-booking/skyport/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOccupancy struct {
	rows []entities.FlightOccupancy
	err  error
}

func (s *staticOccupancy) Upcoming(context.Context) ([]entities.FlightOccupancy, error) {
	return s.rows, s.err
}

func TestSeatInventoryJob_DropsDepartedFlights(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	source := &staticOccupancy{rows: []entities.FlightOccupancy{
		{FlightID: 1, Capacity: 20, Taken: 2},
		{FlightID: 2, Capacity: 10, Taken: 10},
	}}
	job := NewSeatInventoryJob(source, m)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 2, testutil.CollectAndCount(m.FlightAvailableSeats))
	assert.Equal(t, float64(18), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues("1")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues("2")))

	source.rows = source.rows[1:]
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FlightAvailableSeats))
}

func TestSeatInventoryJob_SourceError(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	job := NewSeatInventoryJob(&staticOccupancy{err: errors.New("db down")}, m)

	err := job.Run(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 1, testutil.CollectAndCount(m.JobDuration))
}

func TestSeatInventoryJob_FromStats(t *testing.T) {
	gdb := dbtest.NewMemoryDB(t)
	f := dbtest.Seed(t, gdb)
	dbtest.AddTicket(t, gdb, f.Customer.ID, f.Flight.ID, 2, 3)
	sqlDB, err := db.SQLX(gdb)
	require.NoError(t, err)

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	job := NewSeatInventoryJob(services.NewStatsService(repositories.NewStatsRepository(sqlDB)), m)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.RunScheduled(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return testutil.CollectAndCount(m.FlightAvailableSeats) == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	label := strconv.FormatUint(uint64(f.Flight.ID), 10)
	assert.Equal(t, float64(19), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues(label)))
}

func TestSeatInventoryJob_SetAvailableIsDroppedWhenNotUpcoming(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	source := &staticOccupancy{rows: []entities.FlightOccupancy{{FlightID: 1, Capacity: 20, Taken: 2}}}
	job := NewSeatInventoryJob(source, m)

	job.SetAvailable(7, 5)
	assert.Equal(t, float64(5), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues("7")))

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FlightAvailableSeats))
	assert.Equal(t, float64(18), testutil.ToFloat64(m.FlightAvailableSeats.WithLabelValues("1")))
}
