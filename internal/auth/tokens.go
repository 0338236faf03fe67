package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"airport-booking/skyport/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// RevocationStore remembers revoked token ids until they would have expired anyway.
// common.CacheInterface satisfies it.
type RevocationStore interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
}

// IssuedToken is a signed access token and its expiry
type IssuedToken struct {
	Token     string    `json:"access_token"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type accessTokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	revoked   RevocationStore
}

// NewTokenService creates a token service. revoked may be nil, in which case
// tokens cannot be revoked before expiry.
func NewTokenService(secretKey []byte, ttl time.Duration, revoked RevocationStore) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
		revoked:   revoked,
	}
}

// Issue signs a token for the given user
func (s *TokenService) Issue(userID uint, email string, role constants.Role) (*IssuedToken, error) {
	now := time.Now().UTC()
	tokenID := uuid.New().String()
	expiresAt := now.Add(s.ttl)

	claims := accessTokenClaims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{Token: tokenString, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

// Parse validates a token string and returns the claims it carries
func (s *TokenService) Parse(ctx context.Context, tokenString string) (*JWTClaims, time.Time, error) {
	parsed := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, time.Time{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(parsed.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, time.Time{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	role := constants.Role(parsed.Role)
	if !role.IsValid() {
		return nil, time.Time{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, parsed.Role)
	}

	if s.IsRevoked(ctx, parsed.ID) {
		return nil, time.Time{}, ErrTokenRevoked
	}

	var expiresAt time.Time
	if parsed.ExpiresAt != nil {
		expiresAt = parsed.ExpiresAt.Time
	}

	return &JWTClaims{
		UserIDValue: uint(userID),
		Email:       parsed.Email,
		RoleValue:   role,
		TokenID:     parsed.ID,
		ExpiresAt:   expiresAt,
	}, expiresAt, nil
}

// Revoke marks a token id as unusable until expiresAt
func (s *TokenService) Revoke(tokenID string, expiresAt time.Time) {
	if s.revoked == nil || tokenID == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	s.revoked.Set(revokedKey(tokenID), true, ttl)
}

// IsRevoked reports whether the token id was revoked
func (s *TokenService) IsRevoked(_ context.Context, tokenID string) bool {
	if s.revoked == nil || tokenID == "" {
		return false
	}
	_, found := s.revoked.Get(revokedKey(tokenID))
	return found
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}
