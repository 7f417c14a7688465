package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/service"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitContactRequest represents a public contact form submission.
type SubmitContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Company   string `json:"company" validate:"omitempty,max=255"`
	Message   string `json:"message" validate:"required"`
}

// UpdateContactStatusRequest represents a status change.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body SubmitContactRequest true "Contact data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req SubmitContactRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contact := &model.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Message:   req.Message,
	}

	created, err := h.contactService.Submit(c.Request().Context(), contact)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

// List godoc
// @Summary List contact submissions
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contactService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, contacts, len(contacts))
}

// Get godoc
// @Summary Fetch one contact submission
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /contact/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("contact not found")
	}

	contact, err := h.contactService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, contact)
}

// UpdateStatus godoc
// @Summary Update a contact's status
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact id"
// @Param request body UpdateContactStatusRequest true "New status"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /contact/{id} [put]
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("contact not found")
	}

	var req UpdateContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contact, err := h.contactService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete a contact submission
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("contact not found")
	}

	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{})
}
