// Package token issues and verifies the administrator bearer token.
//
// Tokens are HS256 JWTs. Verification is a pure function of the raw token,
// the signing secret and the current time: nothing is stored and nothing is
// looked up, so a token stays valid until it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrEmpty   = errors.New("token is empty")
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Claims is the payload carried by a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Issue signs a token for the given administrator, valid from now for ttl.
func Issue(admin *domain.Administrator, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: admin.Email,
		Role:  domain.RoleAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and role of raw as of now.
// All failures wrap domain.ErrUnauthorized.
func Verify(raw string, secret []byte, now time.Time) (*domain.Principal, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrEmpty)
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrExpired)
		}
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrUnauthorized, ErrInvalid, err)
	}
	if !tkn.Valid || claims.Role != domain.RoleAdmin || claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrInvalid)
	}

	return &domain.Principal{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}
