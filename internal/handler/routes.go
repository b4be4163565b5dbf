package handler

import (
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, aiRateLimiter *middleware.RateLimiter, authHandler *AuthHandler, dataHandler *DataHandler, transactionHandler *TransactionHandler, budgetHandler *BudgetHandler, familyHandler *FamilyMemberHandler, goalHandler *GoalHandler, recurringHandler *RecurringPaymentHandler, dashboardHandler *DashboardHandler, aiHandler *AIHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.GET("/me", authHandler.Me)
	auth.POST("/callback", authHandler.Callback)
	auth.POST("/logout", authHandler.Logout)

	// Full snapshot routes (protected)
	data := api.Group("/data")
	data.Use(authMiddleware.Authenticate())
	data.GET("", dataHandler.GetData)
	data.PUT("", dataHandler.PutData)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.PUT("/:category", budgetHandler.UpdateBudget)

	// Family member routes (protected)
	familyMembers := api.Group("/family-members")
	familyMembers.Use(authMiddleware.Authenticate())
	familyMembers.POST("", familyHandler.CreateFamilyMember)
	familyMembers.DELETE("/:id", familyHandler.DeleteFamilyMember)

	// Goal routes (protected)
	goals := api.Group("/goals")
	goals.Use(authMiddleware.Authenticate())
	goals.POST("", goalHandler.CreateGoal)
	goals.PATCH("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Recurring payment routes (protected)
	recurring := api.Group("/recurring-payments")
	recurring.Use(authMiddleware.Authenticate())
	recurring.POST("", recurringHandler.CreateRecurringPayment)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringPayment)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/expense-breakdown", dashboardHandler.GetExpenseBreakdown)
	dashboard.GET("/family-activity", dashboardHandler.GetFamilyActivity)

	// AI routes (protected, rate limited)
	aiGroup := api.Group("/ai")
	aiGroup.Use(authMiddleware.Authenticate())
	aiGroup.Use(middleware.RateLimitMiddleware(aiRateLimiter))
	aiGroup.POST("/financial-tip", aiHandler.FinancialTip)
	aiGroup.POST("/dream-plan", aiHandler.DreamPlan)
	aiGroup.POST("/chat", aiHandler.Chat)
	aiGroup.POST("/video-story", aiHandler.VideoStory)

	// WebSocket endpoint (token authenticated via query parameter)
	e.GET("/ws", wsHandler.HandleWS)
}
