package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/constants"
)

func newTokenService() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"), time.Hour, nil)
}

func bearer(t *testing.T, tokens *auth.TokenService, role constants.Role) string {
	t.Helper()
	issued, err := tokens.Issue(7, "someone@example.com", role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + issued.Token
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokenService()
	var seen auth.UserClaims
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.GetUserClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", bearer(t, tokens, constants.RoleCustomer), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/flights", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if seen == nil || seen.UserID() != 7 {
		t.Fatalf("expected claims for user 7, got %+v", seen)
	}
}

func TestIsAdminMiddleware(t *testing.T) {
	tokens := newTokenService()
	handler := AuthMiddleware(tokens)(IsAdminMiddleware()(http.HandlerFunc(okHandler)))

	tests := []struct {
		role constants.Role
		want int
	}{
		{constants.RoleCustomer, http.StatusForbidden},
		{constants.RoleAdmin, http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/airports", nil)
		req.Header.Set("Authorization", bearer(t, tokens, tt.role))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("role %s: expected %d, got %d", tt.role, tt.want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	IsAdminMiddleware()(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without claims, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.RateLimitMiddleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("other clients must have their own bucket, got %d", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected propagated id, got ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated id, got ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := map[string]string{
		"/api/v1/flights/42": "/api/v1/flights/{id}",
		"/api/v1/orders":     "/api/v1/orders",
		"/api/v1/users/3f1c2a8e-2b4d-4f7e-9a51-0c6b1d2e3f40": "/api/v1/users/{id}",
	}
	for in, want := range tests {
		if got := NormalizeEndpoint(in); got != want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}
