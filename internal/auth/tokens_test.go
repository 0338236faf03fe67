package auth

import (
	"context"
	"testing"
	"time"

	"airport-booking/skyport/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevocations struct {
	keys map[string]interface{}
}

func (m *memoryRevocations) Set(key string, value interface{}, _ time.Duration) {
	m.keys[key] = value
}

func (m *memoryRevocations) Get(key string) (interface{}, bool) {
	v, ok := m.keys[key]
	return v, ok
}

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour, nil)

	issued, err := svc.Issue(42, "alice@example.com", constants.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, expiresAt, err := svc.Parse(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID())
	assert.Equal(t, "42", claims.Subject())
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.Equal(t, issued.ExpiresAt.Unix(), expiresAt.Unix())
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret-a"), time.Hour, nil)
	verifier := NewTokenService([]byte("secret-b"), time.Hour, nil)

	issued, err := issuer.Issue(1, "bob@example.com", constants.RoleCustomer)
	require.NoError(t, err)

	_, _, err = verifier.Parse(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute, nil)

	issued, err := svc.Issue(1, "bob@example.com", constants.RoleCustomer)
	require.NoError(t, err)

	_, _, err = svc.Parse(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsNonHMAC(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = svc.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsUnknownRole(t *testing.T) {
	secret := []byte("test-secret")
	svc := NewTokenService(secret, time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "7",
		"role": "pilot",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(secret)
	require.NoError(t, err)

	_, _, err = svc.Parse(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Revoke(t *testing.T) {
	store := &memoryRevocations{keys: map[string]interface{}{}}
	svc := NewTokenService([]byte("test-secret"), time.Hour, store)

	issued, err := svc.Issue(3, "carol@example.com", constants.RoleCustomer)
	require.NoError(t, err)

	_, _, err = svc.Parse(context.Background(), issued.Token)
	require.NoError(t, err)

	svc.Revoke(issued.TokenID, issued.ExpiresAt)

	_, _, err = svc.Parse(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
