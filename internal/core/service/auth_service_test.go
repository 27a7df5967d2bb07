package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

type stubAdminRepo struct {
	mu        sync.Mutex
	admins    map[string]*domain.Administrator
	findErr   error
	createErr error
	creates   int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Administrator)}
}

func cloneAdmin(a *domain.Administrator) *domain.Administrator {
	clone := *a
	return &clone
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Administrator) (*domain.Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.admins[admin.Email]; exists {
		return nil, domain.ErrAdminExists
	}
	stored := cloneAdmin(admin)
	stored.ID = "665f1c2e9a1b2c3d4e5f6a7b"
	r.admins[stored.Email] = stored
	return cloneAdmin(stored), nil
}

func newAuthSvc(repo *stubAdminRepo) *AuthService {
	return NewAuthService(repo, "secret", 0, zerolog.Nop())
}

func TestAuthService_EnsureAdministrator_CreatesHashedRecord(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)

	if err := svc.EnsureAdministrator(context.Background(), " Admin@Example.com ", "pass123"); err != nil {
		t.Fatalf("EnsureAdministrator returned error: %v", err)
	}

	admin, ok := repo.admins["admin@example.com"]
	if !ok {
		t.Fatalf("expected administrator stored under lower-cased email, got %v", repo.admins)
	}
	if admin.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_EnsureAdministrator_Idempotent(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)

	for i := 0; i < 3; i++ {
		if err := svc.EnsureAdministrator(context.Background(), "admin@example.com", "pass123"); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one create, got %d", repo.creates)
	}

	// a different casing of the same email must not create a second record
	if err := svc.EnsureAdministrator(context.Background(), "ADMIN@example.com", "other"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.creates != 1 || len(repo.admins) != 1 {
		t.Fatalf("expected a single administrator, got %d creates / %d records", repo.creates, len(repo.admins))
	}
}

func TestAuthService_EnsureAdministrator_DuplicateOnInsertIsSuccess(t *testing.T) {
	repo := newStubAdminRepo()
	repo.createErr = domain.ErrAdminExists
	svc := newAuthSvc(repo)

	if err := svc.EnsureAdministrator(context.Background(), "admin@example.com", "pass123"); err != nil {
		t.Fatalf("expected concurrent seed to be treated as success, got %v", err)
	}
}

func TestAuthService_EnsureAdministrator_SkipsWhenNotConfigured(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)

	if err := svc.EnsureAdministrator(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no create, got %d", repo.creates)
	}
}

func TestAuthService_EnsureAdministrator_StoreFailure(t *testing.T) {
	repo := newStubAdminRepo()
	repo.findErr = errors.New("server selection timeout")
	svc := newAuthSvc(repo)

	err := svc.EnsureAdministrator(context.Background(), "admin@example.com", "pass123")
	if err == nil || !errors.Is(err, repo.findErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)
	issued := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	if err := svc.EnsureAdministrator(context.Background(), "admin@example.com", "s3cret"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	tok, err := svc.Login(context.Background(), "Admin@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}

	p, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("token should verify at issuance: %v", err)
	}
	if p.Email != "admin@example.com" || p.Role != domain.RoleAdmin || p.Subject == "" {
		t.Fatalf("unexpected principal: %+v", p)
	}

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Second) }
	if _, err := svc.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token to be rejected after expiry, got %v", err)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)
	_ = svc.EnsureAdministrator(context.Background(), "admin@example.com", "goodpass")

	_, wrongPassword := svc.Login(context.Background(), "admin@example.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if wrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if unknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthSvc(newStubAdminRepo())

	cases := [][2]string{{"", "pass"}, {"admin@example.com", ""}, {"  ", "pass"}}
	for _, c := range cases {
		_, err := svc.Login(context.Background(), c[0], c[1])
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Login(%q, %q): expected validation error, got %v", c[0], c[1], err)
		}
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubAdminRepo()
	repo.findErr = errors.New("connection reset")
	svc := newAuthSvc(repo)

	_, err := svc.Login(context.Background(), "admin@example.com", "pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestAuthService_Verify_Concurrent(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthSvc(repo)
	_ = svc.EnsureAdministrator(context.Background(), "admin@example.com", "pw")

	tok, err := svc.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Verify(tok); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent verify failed: %v", err)
	}
}
