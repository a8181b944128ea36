package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/journalkeep/core/internal/application/services"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
)

// InvitationHandler handles invitation requests
type InvitationHandler struct {
	invitationService *services.InvitationService
	logger            *logger.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *services.InvitationService, logger *logger.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		logger:            logger,
	}
}

// ListInvitations handles listing every invitation
func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	invitations, err := h.invitationService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, invitations)
}

// CreateInvitation handles inserting one invitation
func (h *InvitationHandler) CreateInvitation(c echo.Context) error {
	var rec entities.Record
	if err := bindRecord(c, &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	stored, err := h.invitationService.Create(c.Request().Context(), rec)
	if err != nil {
		h.logger.Errorw("Create invitation failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, stored)
}

// UpdateInvitation handles merging a partial record onto an invitation
func (h *InvitationHandler) UpdateInvitation(c echo.Context) error {
	var partial entities.Record
	if err := bindRecord(c, &partial); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	merged, err := h.invitationService.Update(c.Request().Context(), c.Param("id"), partial)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, merged)
}

// DeleteInvitation handles removing an invitation by id
func (h *InvitationHandler) DeleteInvitation(c echo.Context) error {
	if err := h.invitationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "invitation deleted"})
}
