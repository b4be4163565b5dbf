package handler

import (
	"errors"
	"net/http"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *BudgetHandler {
	return &BudgetHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// UpdateBudgetRequest represents the request to update a budget amount
type UpdateBudgetRequest struct {
	Amount string `json:"amount"`
}

// UpdateBudget sets the monthly limit for an existing budget category. The
// category set is fixed; unknown categories are rejected rather than created.
// PUT /budgets/:category
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	category := c.Param("category")

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount format", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	if err := st.UpdateBudget(category, amount); err != nil {
		switch {
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NewNotFoundError(c, "Budget category not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Cannot be negative"},
			})
		default:
			log.Error().Err(err).Int32("user_id", userID).Str("category", category).Msg("Failed to update budget")
			return NewInternalError(c, "Failed to update budget")
		}
	}

	resp := BudgetResponse{Category: category, Amount: amount.String()}
	h.publisher.Publish(userID, websocket.BudgetUpdated(resp))

	log.Info().Int32("user_id", userID).Str("category", category).Msg("Budget updated")

	return c.JSON(http.StatusOK, resp)
}
