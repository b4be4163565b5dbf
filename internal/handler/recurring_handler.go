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

// RecurringPaymentHandler handles recurring payment endpoints
type RecurringPaymentHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewRecurringPaymentHandler creates a new RecurringPaymentHandler
func NewRecurringPaymentHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *RecurringPaymentHandler {
	return &RecurringPaymentHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// CreateRecurringPaymentRequest represents the request to create a recurring payment
type CreateRecurringPaymentRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDay      int    `json:"dueDay"`
}

// CreateRecurringPayment registers a new recurring payment
// POST /recurring-payments
func (h *RecurringPaymentHandler) CreateRecurringPayment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateRecurringPaymentRequest
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

	payment, err := st.AddRecurringPayment(store.RecurringPaymentInput{
		Description: req.Description,
		Amount:      amount,
		DueDay:      req.DueDay,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Description is required", []ValidationError{
				{Field: "description", Message: "Cannot be empty"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Cannot be negative"},
			})
		case errors.Is(err, domain.ErrInvalidDueDay):
			return NewValidationError(c, "Invalid due day", []ValidationError{
				{Field: "dueDay", Message: "Must be between 1 and 31"},
			})
		default:
			log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create recurring payment")
			return NewInternalError(c, "Failed to create recurring payment")
		}
	}

	resp := toRecurringPaymentResponse(payment)
	h.publisher.Publish(userID, websocket.RecurringCreated(resp))

	log.Info().Int32("user_id", userID).Int64("payment_id", payment.ID).Msg("Recurring payment created")

	return c.JSON(http.StatusCreated, resp)
}

// DeleteRecurringPayment removes a recurring payment
// DELETE /recurring-payments/:id
func (h *RecurringPaymentHandler) DeleteRecurringPayment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid recurring payment ID", nil)
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	if err := st.DeleteRecurringPayment(id); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring payment not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int64("payment_id", id).Msg("Failed to delete recurring payment")
		return NewInternalError(c, "Failed to delete recurring payment")
	}

	h.publisher.Publish(userID, websocket.RecurringDeleted(map[string]int64{"id": id}))

	log.Info().Int32("user_id", userID).Int64("payment_id", id).Msg("Recurring payment deleted")

	return c.NoContent(http.StatusNoContent)
}
