package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
	"github.com/leaddesk/leads-api/internal/pkg/token"
)

// AuthService seeds the administrator, handles login and verifies bearer
// tokens.
type AuthService struct {
	repo      ports.AdminRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.AdminRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = token.DefaultTTL
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// EnsureAdministrator creates the administrator record unless one already
// exists for email. It is the only path that creates an administrator.
func (s *AuthService) EnsureAdministrator(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.log.Warn().Msg("administrator credentials not configured, skipping seed")
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.Debug().Str("email", email).Msg("administrator already present")
		return nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return fmt.Errorf("ensure administrator: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure administrator: hash password: %w", err)
	}

	now := s.now().UTC()
	_, err = s.repo.Create(ctx, &domain.Administrator{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrAdminExists) {
		// another instance seeded it between our lookup and insert
		return nil
	}
	if err != nil {
		return fmt.Errorf("ensure administrator: %w", err)
	}

	s.log.Info().Str("email", email).Msg("administrator created")
	return nil
}

// Login checks the credentials and returns a signed bearer token. Unknown
// email and wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrCredentialsRequired
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAdminNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return token.Issue(admin, s.jwtSecret, s.now(), s.tokenTTL)
}

func (s *AuthService) Verify(rawToken string) (*domain.Principal, error) {
	return token.Verify(rawToken, s.jwtSecret, s.now())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
