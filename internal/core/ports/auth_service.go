package ports

import (
	"context"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

type AuthService interface {
	EnsureAdministrator(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	// Verify never touches storage; it is safe to call from any number of
	// goroutines.
	Verify(rawToken string) (*domain.Principal, error)
}

// TokenVerifier is the subset of AuthService the auth middleware depends on.
type TokenVerifier interface {
	Verify(rawToken string) (*domain.Principal, error)
}
