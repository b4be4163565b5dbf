package handler

import (
	"net/http"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler serves the derived dashboard aggregates
type DashboardHandler struct {
	sessionService *service.SessionService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(sessionService *service.SessionService) *DashboardHandler {
	return &DashboardHandler{sessionService: sessionService}
}

// SummaryResponse represents income/expense totals in API responses
type SummaryResponse struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	Balance       string `json:"balance"`
}

// CategorySpendResponse is one entry of the expense breakdown
type CategorySpendResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// MemberActivityResponse is one member's 30-day spending activity
type MemberActivityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	TotalSpent  string `json:"totalSpent"`
	TopCategory string `json:"topCategory,omitempty"`
}

// GetSummary returns the income/expense totals
// GET /dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	totals := st.Totals()
	return c.JSON(http.StatusOK, SummaryResponse{
		TotalIncome:   totals.TotalIncome.String(),
		TotalExpenses: totals.TotalExpenses.String(),
		Balance:       totals.Balance.String(),
	})
}

// GetExpenseBreakdown returns per-category expense sums, largest first
// GET /dashboard/expense-breakdown
func (h *DashboardHandler) GetExpenseBreakdown(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	breakdown := st.ExpenseBreakdown()
	resp := make([]CategorySpendResponse, 0, len(breakdown))
	for _, entry := range breakdown {
		resp = append(resp, CategorySpendResponse{
			Category: entry.Category,
			Amount:   entry.Amount.String(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetFamilyActivity returns the rolling 30-day spending activity per member
// GET /dashboard/family-activity
func (h *DashboardHandler) GetFamilyActivity(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	activity := st.FamilyActivity()
	resp := make([]MemberActivityResponse, 0, len(activity))
	for _, entry := range activity {
		resp = append(resp, toMemberActivityResponse(entry))
	}
	return c.JSON(http.StatusOK, resp)
}

func toMemberActivityResponse(a domain.MemberActivity) MemberActivityResponse {
	return MemberActivityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Gender:      string(a.Gender),
		TotalSpent:  a.TotalSpent.String(),
		TopCategory: a.TopCategory,
	}
}
