package jobs

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/models/entities"
)

const seatInventoryJobName = "seat_inventory"

// OccupancySource reports seat usage of upcoming flights. services.StatsService satisfies it.
type OccupancySource interface {
	Upcoming(ctx context.Context) ([]entities.FlightOccupancy, error)
}

// SeatInventoryJob publishes available seats of upcoming flights as a gauge
type SeatInventoryJob struct {
	source  OccupancySource
	metrics *metrics.MetricsRegistry

	mu       sync.Mutex
	reported map[string]bool
}

// NewSeatInventoryJob creates a new seat inventory job
func NewSeatInventoryJob(source OccupancySource, m *metrics.MetricsRegistry) *SeatInventoryJob {
	return &SeatInventoryJob{
		source:   source,
		metrics:  m,
		reported: make(map[string]bool),
	}
}

// Run refreshes the gauge once. Flights that departed since the last run are dropped from it.
func (j *SeatInventoryJob) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		j.metrics.JobDuration.WithLabelValues(seatInventoryJobName).Observe(time.Since(start).Seconds())
	}()

	occupancy, err := j.source.Upcoming(ctx)
	if err != nil {
		return fmt.Errorf("failed to load upcoming flights: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := make(map[string]bool, len(occupancy))
	for _, o := range occupancy {
		label := strconv.FormatUint(uint64(o.FlightID), 10)
		current[label] = true
		j.metrics.FlightAvailableSeats.WithLabelValues(label).Set(float64(o.Available()))
	}
	for label := range j.reported {
		if !current[label] {
			j.metrics.FlightAvailableSeats.DeleteLabelValues(label)
		}
	}
	j.reported = current

	logging.Debug("Seat inventory refreshed", "flights", len(occupancy), "duration", time.Since(start).String())
	return nil
}

// SetAvailable records a fresh count for one flight between runs. The label is
// tracked like the ones Run sets, so the next Run drops it once the flight is no
// longer upcoming.
func (j *SeatInventoryJob) SetAvailable(flightID uint, available int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	label := strconv.FormatUint(uint64(flightID), 10)
	j.reported[label] = true
	j.metrics.FlightAvailableSeats.WithLabelValues(label).Set(float64(available))
}

// RunScheduled runs the job immediately and then on every tick until ctx is cancelled
func (j *SeatInventoryJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Seat inventory initial run failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Seat inventory scheduled run failed", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Seat inventory job shutting down")
			return
		}
	}
}
