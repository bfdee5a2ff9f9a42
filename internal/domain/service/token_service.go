package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates admin session tokens. Admin capability is
// never toggled by a client-side flag; every admin request carries a token
// verified server-side.
type TokenService interface {
	// GenerateAdminToken creates a signed, short-lived token carrying the
	// admin role.
	GenerateAdminToken() (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*jwt.Token, error)
}
