package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/store"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *TransactionHandler {
	return &TransactionHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// CreateTransactionRequest represents the request to create a transaction
type CreateTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Member      string `json:"member"`
}

// CreateTransaction records a new income or expense
// POST /transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount format", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date format", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	txType := domain.TransactionType(req.Type)

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	tx, err := st.AddTransaction(store.TransactionInput{
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		Type:        txType,
		Category:    req.Category,
		Member:      req.Member,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Description is required", []ValidationError{
				{Field: "description", Message: "Cannot be empty"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Description is too long", []ValidationError{
				{Field: "description", Message: "Maximum 255 characters"},
			})
		case errors.Is(err, domain.ErrInvalidType):
			return NewValidationError(c, "Invalid transaction type", []ValidationError{
				{Field: "type", Message: "Must be income or expense"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Cannot be negative"},
			})
		case errors.Is(err, domain.ErrInvalidCategory):
			return NewValidationError(c, "Invalid category", []ValidationError{
				{Field: "category", Message: "Not in the category list for this transaction type"},
			})
		default:
			log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create transaction")
			return NewInternalError(c, "Failed to create transaction")
		}
	}

	resp := toTransactionResponse(tx)
	h.publisher.Publish(userID, websocket.TransactionCreated(resp))

	log.Info().
		Int32("user_id", userID).
		Int64("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Msg("Transaction created")

	return c.JSON(http.StatusCreated, resp)
}

// DeleteTransaction removes a transaction
// DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	if err := st.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	h.publisher.Publish(userID, websocket.TransactionDeleted(map[string]int64{"id": id}))

	log.Info().Int32("user_id", userID).Int64("transaction_id", id).Msg("Transaction deleted")

	return c.NoContent(http.StatusNoContent)
}
