package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leaddesk/leads-api/internal/api/middleware"
	"github.com/leaddesk/leads-api/internal/core/domain"
)

// errInvalidPayload is returned whenever the request body cannot be decoded.
var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")

// ctxPrincipal extracts the principal injected by the Auth middleware. A
// missing principal means the route was wired without the middleware.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, _ := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if p == nil || p.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}
	return p, nil
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidPayload
	}
	return c.Validate(req)
}
