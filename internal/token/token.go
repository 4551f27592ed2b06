package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"parcelpro/internal/apperr"
)

// Claims binds an email identity to a signed token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed identity tokens. Verification is
// stateless; there is no revocation.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue produces an HS256 token embedding the email with an absolute
// expiry of the configured TTL from now.
func (s *Service) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded email.
// Missing, malformed, expired or badly signed tokens all fail with
// apperr.Unauthorized.
func (s *Service) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.Unauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", apperr.Unauthorized
	}

	if strings.TrimSpace(claims.Email) == "" {
		return "", apperr.Unauthorized
	}
	return claims.Email, nil
}
