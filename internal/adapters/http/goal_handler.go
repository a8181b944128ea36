package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/journalkeep/core/internal/application/services"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// GoalHandler handles goal requests
type GoalHandler struct {
	goalService *services.GoalService
	logger      *logger.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *services.GoalService, logger *logger.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// ListGoals handles listing goals, optionally filtered by owner
func (h *GoalHandler) ListGoals(c echo.Context) error {
	goals, err := h.goalService.List(c.Request().Context(), getUserIDFromContext(c), c.QueryParam("userId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, goals)
}

// SyncGoals handles the full-replace goal sync for one owner
func (h *GoalHandler) SyncGoals(c echo.Context) error {
	var req ports.SyncGoalsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	goals, err := h.goalService.Sync(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		h.logger.Errorw("Goal sync failed", "error", err, "user_id", req.UserID)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, goals)
}
