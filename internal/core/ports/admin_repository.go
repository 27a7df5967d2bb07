package ports

import (
	"context"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

// AdminRepository persists the administrator identity.
type AdminRepository interface {
	// FindByEmail expects an already lower-cased email and returns
	// domain.ErrAdminNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	// Create returns domain.ErrAdminExists on a duplicate email.
	Create(ctx context.Context, admin *domain.Administrator) (*domain.Administrator, error)
}
