package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/journalkeep/core/internal/application/services"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Registration failed", "error", err, "email", req.Email)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// ForgotPassword handles reset link requests
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ports.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		h.logger.Errorw("Forgot password failed", "error", err, "email", req.Email)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, response)
}

// ResetPassword handles reset token consumption
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ports.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req); err != nil {
		h.logger.Warnw("Reset password failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

// UserHandler handles user-related requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser handles getting current user info
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser handles updating the current user's profile
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	var partial entities.Record
	if err := bindRecord(c, &partial); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), getUserIDFromContext(c), partial)
	if err != nil {
		h.logger.Errorw("Update user failed", "error", err, "user_id", getUserIDFromContext(c))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// GetUser handles getting a user by id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles merging a partial record onto a user by id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var partial entities.Record
	if err := bindRecord(c, &partial); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), c.Param("id"), partial)
	if err != nil {
		h.logger.Errorw("Update user failed", "error", err, "user_id", c.Param("id"))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers handles listing all users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List users failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}

// GetSettings handles reading a user's settings object
func (h *UserHandler) GetSettings(c echo.Context) error {
	settings, err := h.userService.GetSettings(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, settings)
}

// PutSettings handles replacing a user's settings object
func (h *UserHandler) PutSettings(c echo.Context) error {
	var settings entities.Record
	if err := bindRecord(c, &settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	stored, err := h.userService.PutSettings(c.Request().Context(), c.Param("userId"), settings)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, stored)
}

// Utility functions and helper types

// bindRecord decodes the request body into a record. Body only: echo's full
// Bind writes path params into a map destination, which panics on a nil map
// and would leak :id/:userId into the stored record.
func bindRecord(c echo.Context, rec *entities.Record) error {
	return (&echo.DefaultBinder{}).BindBody(c, rec)
}

func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get("user").(string); ok {
		return id
	}
	return ""
}

// httpError maps domain errors onto HTTP status codes
func httpError(err error) error {
	switch {
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrInvalidRequest),
		errors.Is(err, entities.ErrTokenInvalid),
		errors.Is(err, entities.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, entities.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}
