package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/metrics"

	"github.com/google/uuid"
)

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The route pattern is only known after routing, so in-flight uses the normalized path
			inFlight := NormalizeEndpoint(r.URL.Path)
			metricsReg.HTTPRequestsInFlight.WithLabelValues(inFlight).Inc()
			defer metricsReg.HTTPRequestsInFlight.WithLabelValues(inFlight).Dec()

			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			endpoint := routePattern(r)
			metricsReg.HTTPRequestsTotal.WithLabelValues(
				endpoint,
				r.Method,
				strconv.Itoa(wrapped.statusCode),
			).Inc()

			metricsReg.HTTPRequestDuration.WithLabelValues(
				endpoint,
				r.Method,
			).Observe(time.Since(start).Seconds())
		})
	}
}

// RequestIDMiddleware adds a request ID to the context if not present
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := auth.SetRequestID(r.Context(), requestID)

		// Add to response header for tracing
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// NormalizeEndpoint normalizes an endpoint path for metrics
// Removes IDs to avoid metric cardinality explosion
func NormalizeEndpoint(path string) string {
	// e.g., /api/v1/flights/12345 -> /api/v1/flights/{id}
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isIDLike(part) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// isIDLike checks if a string looks like an ID (numeric or UUID)
func isIDLike(s string) bool {
	if s == "" {
		return false
	}
	if _, err := uuid.Parse(s); err == nil && len(s) == 36 {
		return true
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
