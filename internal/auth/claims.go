package auth

import (
	"strconv"
	"time"

	"airport-booking/skyport/internal/constants"
)

// UserClaims is the identity attached to an authenticated request.
type UserClaims interface {
	UserID() uint
	Subject() string
	Role() string
	IsAdmin() bool
}

type JWTClaims struct {
	UserIDValue uint
	Email       string
	RoleValue   constants.Role
	TokenID     string
	ExpiresAt   time.Time
}

func (c *JWTClaims) UserID() uint { return c.UserIDValue }
func (c *JWTClaims) Subject() string {
	return strconv.FormatUint(uint64(c.UserIDValue), 10)
}
func (c *JWTClaims) Role() string  { return string(c.RoleValue) }
func (c *JWTClaims) IsAdmin() bool { return c.RoleValue == constants.RoleAdmin }
