package handler

import (
	"net/http"

	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID    int32  `json:"id"`
	Email string `json:"email"`
}

// Me returns the current authenticated user's information
// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get user")
		return NewNotFoundError(c, "User not found")
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// Callback confirms a fresh Auth0 login and warms the user's session store
// POST /auth/callback
func (h *AuthHandler) Callback(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get user")
		return NewNotFoundError(c, "User not found")
	}

	if _, err := h.sessionService.Get(userID); err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	log.Info().Int32("user_id", userID).Str("subject", middleware.GetSubject(c)).Msg("User logged in")

	return c.JSON(http.StatusOK, UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// LogoutResponse represents the response from logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Logout flushes any pending save and drops the user's in-memory session
// POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	h.sessionService.Evict(userID)

	log.Info().Int32("user_id", userID).Msg("User logged out")

	// Auth0 handles actual session termination
	return c.JSON(http.StatusOK, LogoutResponse{
		Message: "Logged out successfully",
	})
}
