package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/logging"
)

// AuthMiddleware requires a valid bearer token and stores its claims in the request context
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			claims, _, err := tokens.Parse(r.Context(), strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
			if err != nil {
				msg := constants.MsgUnauthorized
				if errors.Is(err, auth.ErrTokenRevoked) {
					msg = "token has been revoked"
				}
				logging.Debug("Rejected bearer token", "request_id", auth.GetRequestID(r.Context()), "error", err)
				common.RespondError(w, initTime, nil, msg, http.StatusUnauthorized)
				return
			}

			rememberClaims(r.Context(), claims)
			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsHolder lets outer middleware see who the request was authenticated as
type claimsHolder struct {
	claims auth.UserClaims
}

type claimsHolderKey struct{}

func withClaimsHolder(ctx context.Context, h *claimsHolder) context.Context {
	return context.WithValue(ctx, claimsHolderKey{}, h)
}

func rememberClaims(ctx context.Context, claims auth.UserClaims) {
	if h, ok := ctx.Value(claimsHolderKey{}).(*claimsHolder); ok {
		h.claims = claims
	}
}
