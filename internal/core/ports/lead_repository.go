package ports

import (
	"context"
	"time"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

// ListLeadsFilter carries the query parameters for listing leads.
type ListLeadsFilter struct {
	Status string // optional, matched verbatim against the stored status
	Search string // optional: case-insensitive substring of name, email or message
}

// LeadRepository defines persistence operations for leads. Every mutating
// method is a single atomic update in the backing store.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// List returns matching leads ordered by creation time, newest first.
	List(ctx context.Context, filter ListLeadsFilter) ([]*domain.Lead, error)
	// SetStatus replaces the status and returns the updated lead, or
	// domain.ErrLeadNotFound.
	SetStatus(ctx context.Context, id string, status domain.LeadStatus, at time.Time) (*domain.Lead, error)
	// PushNote prepends note to the lead's notes without reading the lead
	// first, so concurrent appends never overwrite each other.
	PushNote(ctx context.Context, id string, note domain.Note) (*domain.Lead, error)
}
