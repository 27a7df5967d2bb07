package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/leaddesk/leads-api/internal/core/domain"
)

type stubVerifier struct {
	principal *domain.Principal
	err       error
	gotToken  string
}

func (s *stubVerifier) Verify(raw string) (*domain.Principal, error) {
	s.gotToken = raw
	return s.principal, s.err
}

func runAuth(t *testing.T, v *stubVerifier, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(v)(func(c echo.Context) error {
		called = true
		p, _ := c.Get(PrincipalKey).(*domain.Principal)
		if p == nil || p.Subject != "admin-1" {
			t.Fatalf("principal not set: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	v := &stubVerifier{principal: &domain.Principal{Subject: "admin-1", Email: "a@b.c", Role: domain.RoleAdmin}}

	rec, called := runAuth(t, v, "Bearer good-token")

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if v.gotToken != "good-token" {
		t.Fatalf("verifier got %q", v.gotToken)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, called := runAuth(t, &stubVerifier{}, "")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer   "} {
		rec, called := runAuth(t, &stubVerifier{}, header)
		if called {
			t.Fatalf("%q: should not reach next", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	v := &stubVerifier{err: errors.New("token expired")}

	rec, called := runAuth(t, v, "Bearer not-a-token")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name      string
		principal *domain.Principal
		want      int
	}{
		{"admin allowed", &domain.Principal{Subject: "1", Role: domain.RoleAdmin}, http.StatusOK},
		{"other role forbidden", &domain.Principal{Subject: "1", Role: "viewer"}, http.StatusForbidden},
		{"no principal", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if tc.principal != nil {
				c.Set(PrincipalKey, tc.principal)
			}

			handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
