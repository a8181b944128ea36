package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/journalkeep/core/internal/application/services"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
)

// EntryHandler handles diary entry requests
type EntryHandler struct {
	entryService *services.EntryService
	logger       *logger.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService *services.EntryService, logger *logger.Logger) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// ListEntries handles listing entries, optionally filtered by owner
func (h *EntryHandler) ListEntries(c echo.Context) error {
	entries, err := h.entryService.List(c.Request().Context(), getUserIDFromContext(c), c.QueryParam("userId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateEntry handles inserting one entry
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	var rec entities.Record
	if err := bindRecord(c, &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	stored, err := h.entryService.Create(c.Request().Context(), getUserIDFromContext(c), rec)
	if err != nil {
		h.logger.Errorw("Create entry failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, stored)
}

// UpdateEntry handles merging a partial record onto an entry
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	var partial entities.Record
	if err := bindRecord(c, &partial); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	merged, err := h.entryService.Update(c.Request().Context(), c.Param("id"), partial)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, merged)
}

// DeleteEntry handles removing an entry by id
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	if err := h.entryService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "entry deleted"})
}
