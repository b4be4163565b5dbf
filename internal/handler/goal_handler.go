package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/store"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal endpoints
type GoalHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *GoalHandler {
	return &GoalHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// CreateGoalRequest represents the request to create a goal
type CreateGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
}

// UpdateGoalRequest represents a partial goal update. Absent fields are left
// unchanged.
type UpdateGoalRequest struct {
	Name          *string `json:"name"`
	TargetAmount  *string `json:"targetAmount"`
	CurrentAmount *string `json:"currentAmount"`
}

// CreateGoal creates a new savings goal. Progress always starts at zero
// regardless of what the caller sends.
// POST /goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return NewValidationError(c, "Invalid target amount format", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	goal, err := st.AddGoal(store.GoalInput{Name: req.Name, TargetAmount: target})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Name is required", []ValidationError{
				{Field: "name", Message: "Cannot be empty"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid target amount", []ValidationError{
				{Field: "targetAmount", Message: "Cannot be negative"},
			})
		default:
			log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create goal")
			return NewInternalError(c, "Failed to create goal")
		}
	}

	resp := toGoalResponse(goal)
	h.publisher.Publish(userID, websocket.GoalCreated(resp))

	log.Info().Int32("user_id", userID).Int64("goal_id", goal.ID).Msg("Goal created")

	return c.JSON(http.StatusCreated, resp)
}

// UpdateGoal applies a partial update to a goal
// PATCH /goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var patch domain.GoalPatch
	patch.Name = req.Name
	if req.TargetAmount != nil {
		target, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil || target.IsNegative() {
			return NewValidationError(c, "Invalid target amount", []ValidationError{
				{Field: "targetAmount", Message: "Must be a non-negative decimal number"},
			})
		}
		patch.TargetAmount = &target
	}
	if req.CurrentAmount != nil {
		current, err := decimal.NewFromString(*req.CurrentAmount)
		if err != nil || current.IsNegative() {
			return NewValidationError(c, "Invalid current amount", []ValidationError{
				{Field: "currentAmount", Message: "Must be a non-negative decimal number"},
			})
		}
		patch.CurrentAmount = &current
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	goal, err := st.UpdateGoal(id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int64("goal_id", id).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}

	resp := toGoalResponse(goal)
	h.publisher.Publish(userID, websocket.GoalUpdated(resp))

	log.Info().Int32("user_id", userID).Int64("goal_id", id).Msg("Goal updated")

	return c.JSON(http.StatusOK, resp)
}

// DeleteGoal removes a goal
// DELETE /goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	if err := st.DeleteGoal(id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int64("goal_id", id).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	h.publisher.Publish(userID, websocket.GoalDeleted(map[string]int64{"id": id}))

	log.Info().Int32("user_id", userID).Int64("goal_id", id).Msg("Goal deleted")

	return c.NoContent(http.StatusNoContent)
}
