package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leaddesk/leads-api/internal/api/metrics"
	"github.com/leaddesk/leads-api/internal/core/ports"
)

// LeadHandler handles HTTP requests for lead operations.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// Create handles POST /api/leads.
//
// @Summary      Submit a contact-form lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  domain.Lead
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.service.Create(c.Request().Context(), ports.CreateLeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Source:  req.Source,
	})
	if err != nil {
		return err
	}

	metrics.LeadsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, lead)
}

// List handles GET /api/leads.
//
// @Summary      List leads, newest first
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Exact status filter (new, contacted, converted)"
// @Param        search  query     string  false  "Case-insensitive match on name, email or message"
// @Success      200     {array}   domain.Lead
// @Failure      401     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	leads, err := h.service.List(c.Request().Context(), ports.ListLeadsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, leads)
}

// UpdateStatus handles PATCH /api/leads/:id/status.
//
// @Summary      Change a lead's status
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Lead id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Lead
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.LeadStatusUpdatesTotal.WithLabelValues(string(lead.Status)).Inc()
	return c.JSON(http.StatusOK, lead)
}

// AddNote handles POST /api/leads/:id/notes.
//
// @Summary      Prepend a note to a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Lead id"
// @Param        body  body      addNoteRequest  true  "Note text"
// @Success      200   {object}  domain.Lead
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/leads/{id}/notes [post]
func (h *LeadHandler) AddNote(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req addNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.service.AddNote(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	metrics.LeadNotesAddedTotal.Inc()
	return c.JSON(http.StatusOK, lead)
}
