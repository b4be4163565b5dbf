package handler

import (
	"net/http"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/util"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DataHandler serves the full-snapshot endpoints
type DataHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *DataHandler {
	return &DataHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Member      string `json:"member"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// FamilyMemberResponse represents a family member in API responses
type FamilyMemberResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
}

// RecurringPaymentResponse represents a recurring payment in API responses
type RecurringPaymentResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDay      int    `json:"dueDay"`
	NextDueDate string `json:"nextDueDate"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Quantity      string `json:"quantity"`
	PurchasePrice string `json:"purchasePrice"`
	CurrentValue  string `json:"currentValue"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	TotalAmount  string `json:"totalAmount"`
	AmountPaid   string `json:"amountPaid"`
	InterestRate string `json:"interestRate"`
	MinPayment   string `json:"minPayment"`
}

// SnapshotResponse represents the user's complete data in API responses
type SnapshotResponse struct {
	Transactions      []TransactionResponse      `json:"transactions"`
	Budgets           []BudgetResponse           `json:"budgets"`
	FamilyMembers     []FamilyMemberResponse     `json:"familyMembers"`
	Goals             []GoalResponse             `json:"goals"`
	RecurringPayments []RecurringPaymentResponse `json:"recurringPayments"`
	Accounts          []AccountResponse          `json:"accounts"`
	Investments       []InvestmentResponse       `json:"investments"`
	Debts             []DebtResponse             `json:"debts"`
	Version           uint64                     `json:"version"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	date := ""
	if !t.Date.IsZero() {
		date = t.Date.Format("2006-01-02")
	}
	return TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount.String(),
		Date:        date,
		Type:        string(t.Type),
		Category:    t.Category,
		Member:      t.Member,
	}
}

func toBudgetResponse(b domain.Budget) BudgetResponse {
	return BudgetResponse{Category: b.Category, Amount: b.Amount.String()}
}

func toFamilyMemberResponse(m domain.FamilyMember) FamilyMemberResponse {
	return FamilyMemberResponse{ID: m.ID, Name: m.Name, Gender: string(m.Gender)}
}

func toGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
	}
}

func toRecurringPaymentResponse(p domain.RecurringPayment) RecurringPaymentResponse {
	return RecurringPaymentResponse{
		ID:          p.ID,
		Description: p.Description,
		Amount:      p.Amount.String(),
		DueDay:      p.DueDay,
		NextDueDate: util.NextDueDate(p.DueDay, time.Now()).Format("2006-01-02"),
	}
}

func toAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Name: a.Name, Type: a.Type, Balance: a.Balance.String()}
}

func toInvestmentResponse(i domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:            i.ID,
		Name:          i.Name,
		Type:          i.Type,
		Quantity:      i.Quantity.String(),
		PurchasePrice: i.PurchasePrice.String(),
		CurrentValue:  i.CurrentValue.String(),
	}
}

func toDebtResponse(d domain.Debt) DebtResponse {
	return DebtResponse{
		ID:           d.ID,
		Name:         d.Name,
		Type:         d.Type,
		TotalAmount:  d.TotalAmount.String(),
		AmountPaid:   d.AmountPaid.String(),
		InterestRate: d.InterestRate.String(),
		MinPayment:   d.MinPayment.String(),
	}
}

func toSnapshotResponse(s domain.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Transactions:      make([]TransactionResponse, 0, len(s.Transactions)),
		Budgets:           make([]BudgetResponse, 0, len(s.Budgets)),
		FamilyMembers:     make([]FamilyMemberResponse, 0, len(s.FamilyMembers)),
		Goals:             make([]GoalResponse, 0, len(s.Goals)),
		RecurringPayments: make([]RecurringPaymentResponse, 0, len(s.RecurringPayments)),
		Accounts:          make([]AccountResponse, 0, len(s.Accounts)),
		Investments:       make([]InvestmentResponse, 0, len(s.Investments)),
		Debts:             make([]DebtResponse, 0, len(s.Debts)),
		Version:           s.Version,
	}
	for _, t := range s.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t))
	}
	for _, b := range s.Budgets {
		resp.Budgets = append(resp.Budgets, toBudgetResponse(b))
	}
	for _, m := range s.FamilyMembers {
		resp.FamilyMembers = append(resp.FamilyMembers, toFamilyMemberResponse(m))
	}
	for _, g := range s.Goals {
		resp.Goals = append(resp.Goals, toGoalResponse(g))
	}
	for _, p := range s.RecurringPayments {
		resp.RecurringPayments = append(resp.RecurringPayments, toRecurringPaymentResponse(p))
	}
	for _, a := range s.Accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(a))
	}
	for _, i := range s.Investments {
		resp.Investments = append(resp.Investments, toInvestmentResponse(i))
	}
	for _, d := range s.Debts {
		resp.Debts = append(resp.Debts, toDebtResponse(d))
	}
	return resp
}

// GetData returns the user's complete snapshot
// GET /data
func (h *DataHandler) GetData(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	return c.JSON(http.StatusOK, toSnapshotResponse(st.Snapshot()))
}

// PutData replaces the user's complete snapshot. Collections may be missing
// and numeric fields may arrive as numbers, strings or null; everything is
// normalized on the way in.
// PUT /data
func (h *DataHandler) PutData(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var raw domain.RawSnapshot
	if err := c.Bind(&raw); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	snap, err := h.sessionService.ReplaceSnapshot(userID, raw)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to replace snapshot")
		return NewInternalError(c, "Failed to save data")
	}

	resp := toSnapshotResponse(snap)
	h.publisher.Publish(userID, websocket.SnapshotReplaced(resp))

	log.Info().Int32("user_id", userID).Uint64("version", snap.Version).Msg("Snapshot replaced")

	return c.JSON(http.StatusOK, resp)
}
