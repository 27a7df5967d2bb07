package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
)

type LeadService struct {
	repo   ports.LeadRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewLeadService(repo ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a public contact-form submission. It is the only entry point
// that sets the initial status.
func (s *LeadService) Create(ctx context.Context, input ports.CreateLeadInput) (*domain.Lead, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" {
		return nil, domain.ErrLeadFieldsRequired
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = domain.DefaultLeadSource
	}

	now := s.timestamp()
	lead, err := s.repo.Create(ctx, &domain.Lead{
		Name:      name,
		Email:     email,
		Message:   input.Message,
		Source:    source,
		Status:    domain.StatusNew,
		Notes:     []domain.Note{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create lead")
		return nil, err
	}

	s.logger.Info().Str("lead_id", lead.ID).Str("source", lead.Source).Msg("lead created")
	return lead, nil
}

// List returns leads newest first. The status filter is passed through
// verbatim, unchecked against the enum: an unknown or padded value simply
// matches nothing.
func (s *LeadService) List(ctx context.Context, input ports.ListLeadsInput) ([]*domain.Lead, error) {
	leads, err := s.repo.List(ctx, ports.ListLeadsFilter{
		Status: input.Status,
		Search: strings.TrimSpace(input.Search),
	})
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}
	return leads, nil
}

// UpdateStatus moves a lead to any valid status.
func (s *LeadService) UpdateStatus(ctx context.Context, id, status string) (*domain.Lead, error) {
	next := domain.LeadStatus(status)
	if !next.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	lead, err := s.repo.SetStatus(ctx, id, next, s.timestamp())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", id).Str("status", status).Msg("lead status updated")
	return lead, nil
}

// AddNote prepends a note to the lead's log.
func (s *LeadService) AddNote(ctx context.Context, id, text string) (*domain.Lead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrNoteTextRequired
	}

	lead, err := s.repo.PushNote(ctx, id, domain.Note{Text: text, CreatedAt: s.timestamp()})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", id).Int("notes", len(lead.Notes)).Msg("note added")
	return lead, nil
}

// timestamp is the current time at the store's millisecond precision, so a
// value returned from a write matches what later reads return.
func (s *LeadService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
