package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for skyport
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Booking Metrics
	OrdersCreatedTotal   prometheus.Counter
	TicketsSoldTotal     prometheus.Counter
	OrderRejectionsTotal *prometheus.CounterVec
	SeatConflictsTotal   prometheus.Counter
	OrderEventsTotal     *prometheus.CounterVec
	FlightAvailableSeats *prometheus.GaugeVec
	JobDuration          *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric with reg, or the default registerer when reg is nil
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyport_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyport_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyport_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyport_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyport_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Booking Metrics
		OrdersCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "skyport_orders_created_total",
				Help: "Total orders committed",
			},
		),
		TicketsSoldTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "skyport_tickets_sold_total",
				Help: "Total tickets committed",
			},
		),
		OrderRejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyport_order_rejections_total",
				Help: "Orders rejected by reason",
			},
			[]string{"reason"},
		),
		SeatConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "skyport_seat_conflicts_total",
				Help: "Orders rejected by the seat unique index after passing validation",
			},
		),
		OrderEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skyport_order_events_total",
				Help: "Order events by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		FlightAvailableSeats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skyport_flight_available_seats",
				Help: "Seats still available on upcoming flights",
			},
			[]string{"flight_id"},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skyport_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"job_name"},
		),
	}
}
