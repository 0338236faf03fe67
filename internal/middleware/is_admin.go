package middleware

import (
	"net/http"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
)

// IsAdminMiddleware must run after AuthMiddleware
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			if !claims.IsAdmin() {
				common.RespondError(w, initTime, nil, constants.MsgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
