package ports

import (
	"context"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

// CreateLeadInput is the DTO passed from the transport layer on public
// submissions.
type CreateLeadInput struct {
	Name    string
	Email   string
	Message string
	Source  string
}

// ListLeadsInput carries the list endpoint query.
type ListLeadsInput struct {
	Status string
	Search string
}

// LeadService defines the lead lifecycle use cases.
type LeadService interface {
	Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	List(ctx context.Context, input ListLeadsInput) ([]*domain.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Lead, error)
	AddNote(ctx context.Context, id, text string) (*domain.Lead, error)
}
