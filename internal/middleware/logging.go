package middleware

import (
	"net/http"
	"strconv"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/logging"

	"github.com/go-chi/chi/v5"
)

// Logging writes one structured line per request once the handler has finished
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		// Handlers below attach claims to a derived request, so capture them through the holder
		holder := &claimsHolder{}
		next.ServeHTTP(wrapped, r.WithContext(withClaimsHolder(r.Context(), holder)))

		userID := ""
		if holder.claims != nil {
			userID = strconv.FormatUint(uint64(holder.claims.UserID()), 10)
		}

		logger := logging.WithRequest(auth.GetRequestID(r.Context()), userID, r.Method, routePattern(r))
		fields := []interface{}{
			"status_code", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}

		switch {
		case wrapped.statusCode >= http.StatusInternalServerError:
			logger.Errorw("HTTP request completed", fields...)
		case wrapped.statusCode >= http.StatusBadRequest:
			logger.Warnw("HTTP request completed", fields...)
		default:
			logger.Infow("HTTP request completed", fields...)
		}
	})
}

// routePattern prefers chi's matched pattern and falls back to the normalized path
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return NormalizeEndpoint(r.URL.Path)
}
