package api

import (
	"net/http"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/models/dtos"
)

// ListOrders godoc
// GET /api/v1/orders
// Only the caller's own orders are listed.
func (h *Handlers) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		page, err := h.deps.Services.Orders.ListOrders(r.Context(), claims.UserID(), paginationParams(r))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Orders fetched", page)
	}
}

// GetOrder godoc
// GET /api/v1/orders/{id}
func (h *Handlers) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		id, err := idParam(r)
		if err != nil {
			common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
			return
		}

		order, err := h.deps.Services.Orders.GetOrder(r.Context(), id, claims.UserID())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Order fetched", order)
	}
}

// CreateOrder godoc
// POST /api/v1/orders
// Books every ticket in the body or none of them.
func (h *Handlers) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		var req dtos.OrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		order, err := h.deps.Services.Orders.CreateOrder(r.Context(), claims.UserID(), req.Tickets)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Order created", dtos.NewOrderView(*order), http.StatusCreated)
	}
}

// DeleteOrder godoc
// DELETE /api/v1/orders/{id} (admin)
func (h *Handlers) DeleteOrder() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Orders.DeleteOrder, "Order deleted")
}
