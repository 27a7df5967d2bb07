package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leaddesk/leads-api/internal/api/metrics"
	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.LoginLimiter
	log         zerolog.Logger
}

// NewAuthHandler wires the login endpoint. A nil limiter disables throttling.
func NewAuthHandler(authService ports.AuthService, limiter ports.LoginLimiter, log zerolog.Logger) *AuthHandler {
	if limiter == nil {
		limiter = nopLimiter{}
	}
	return &AuthHandler{authService: authService, limiter: limiter, log: log}
}

// Login authenticates the administrator and returns a bearer token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	key := c.RealIP()

	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return domain.ErrTooManyAttempts
	}

	token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			if rerr := h.limiter.RecordFailure(ctx, key); rerr != nil {
				h.log.Warn().Err(rerr).Msg("failed to record login failure")
			}
		}
		return err
	}

	if rerr := h.limiter.Reset(ctx, key); rerr != nil {
		h.log.Warn().Err(rerr).Msg("failed to reset login limiter")
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// nopLimiter allows every attempt.
type nopLimiter struct{}

func (nopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (nopLimiter) RecordFailure(context.Context, string) error { return nil }
func (nopLimiter) Reset(context.Context, string) error         { return nil }
