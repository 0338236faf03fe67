package api

import (
	"net/http"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/models/dtos"
)

// RegisterUser godoc
// POST /api/v1/user/register
func (h *Handlers) RegisterUser() http.HandlerFunc {
	return createHandler(h.deps.Services.Users.Register, "User registered")
}

// IssueToken godoc
// POST /api/v1/user/token
func (h *Handlers) IssueToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.TokenRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		token, err := h.deps.Services.Users.Authenticate(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Token issued", token)
	}
}

// Me godoc
// GET /api/v1/user/me
func (h *Handlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		user, err := h.deps.Services.Users.Me(r.Context(), claims.UserID())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User fetched", user)
	}
}

// Logout godoc
// POST /api/v1/user/logout
// Revokes the bearer token used for this request.
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims, ok := auth.GetUserClaims(r.Context()).(*auth.JWTClaims)
		if !ok || claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		h.deps.Services.Users.Logout(claims.TokenID, claims.ExpiresAt)
		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}
