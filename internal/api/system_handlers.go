package api

import (
	"context"
	"net/http"
	"time"

	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/models/entities"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck godoc
// GET /health
func (h *Handlers) HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		svcs := map[string]entities.ServiceStatus{}
		status := "ok"

		if err := h.deps.SQLDB.PingContext(ctx); err != nil {
			svcs["database"] = entities.ServiceStatus{Status: "down", Details: err.Error()}
			status = "degraded"
		} else {
			svcs["database"] = entities.ServiceStatus{Status: "up", Details: h.deps.SQLDB.DriverName()}
		}

		if h.deps.Redis != nil {
			if err := h.deps.Redis.Ping(ctx).Err(); err != nil {
				svcs["redis"] = entities.ServiceStatus{Status: "down", Details: err.Error()}
				status = "degraded"
			} else {
				svcs["redis"] = entities.ServiceStatus{Status: "up", Details: "connected"}
			}
		} else {
			svcs["redis"] = entities.ServiceStatus{Status: "disabled", Details: "using in-memory cache"}
		}

		resp := entities.HealthCheckResponse{
			Status:   status,
			Services: svcs,
			UpSince:  h.deps.UpSince,
			Uptime:   time.Since(h.deps.UpSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, "Health check", resp, code)
	}
}

// BookingStats godoc
// GET /api/v1/admin/stats
func (h *Handlers) BookingStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := h.deps.Services.Stats.Overview(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Booking stats", stats)
	}
}
