package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"pixelstore/config"
	"pixelstore/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Admin == nil || cfg.Admin.TokenSecret == "" {
		return nil, errors.New("admin token secret must be provided")
	}

	return &jwtService{
		secret: cfg.Admin.TokenSecret,
		ttl:    cfg.Admin.TokenTTL,
	}, nil
}

// GenerateAdminToken creates a signed token carrying the admin role.
func (s *jwtService) GenerateAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"sub":   "admin",
		"roles": []string{"admin"},
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string.
func (s *jwtService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
}
