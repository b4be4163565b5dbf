package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/ai"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AIHandler handles the AI proxy endpoints. All routes are read-only with
// respect to domain state and are rate limited per user.
type AIHandler struct {
	sessionService *service.SessionService
	insightService *service.InsightService
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(sessionService *service.SessionService, insightService *service.InsightService) *AIHandler {
	return &AIHandler{
		sessionService: sessionService,
		insightService: insightService,
	}
}

// FinancialTipResponse represents a generated savings tip
type FinancialTipResponse struct {
	Tip string `json:"tip"`
}

// DreamPlanRequest represents the request to plan a dream
type DreamPlanRequest struct {
	Dream string `json:"dream"`
}

// ChatMessageRequest is one turn of a chat conversation
type ChatMessageRequest struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest represents the request to continue a chat conversation
type ChatRequest struct {
	Messages []ChatMessageRequest `json:"messages"`
}

// ChatResponse represents the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// VideoStoryRequest represents the request to generate a video story
type VideoStoryRequest struct {
	Prompt string `json:"prompt"`
}

// FinancialTip returns one actionable savings tip based on recent spending
// POST /ai/financial-tip
func (h *AIHandler) FinancialTip(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	tip, err := h.insightService.FinancialTip(c.Request().Context(), st, time.Now())
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Financial tip generation failed")
		return NewUpstreamError(c, "The tip service is unavailable right now")
	}

	return c.JSON(http.StatusOK, FinancialTipResponse{Tip: tip})
}

// DreamPlan generates a structured plan and illustration for a dream
// POST /ai/dream-plan
func (h *AIHandler) DreamPlan(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req DreamPlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.Dream) == "" {
		return NewValidationError(c, "Dream is required", []ValidationError{
			{Field: "dream", Message: "Cannot be empty"},
		})
	}

	result, err := h.insightService.DreamPlan(c.Request().Context(), userID, req.Dream)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Dream plan generation failed")
		return NewUpstreamError(c, "The planning service is unavailable right now")
	}

	log.Info().Int32("user_id", userID).Str("title", result.Plan.Title).Msg("Dream plan generated")

	return c.JSON(http.StatusOK, result)
}

// Chat answers a finance question grounded in the user's own data
// POST /ai/chat
func (h *AIHandler) Chat(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Messages) == 0 {
		return NewValidationError(c, "At least one message is required", []ValidationError{
			{Field: "messages", Message: "Cannot be empty"},
		})
	}

	history := make([]ai.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, ai.ChatMessage{Role: m.Role, Text: m.Text})
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	reply, err := h.insightService.Chat(c.Request().Context(), st, history)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Chat generation failed")
		return NewUpstreamError(c, "The chat service is unavailable right now")
	}

	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// VideoStory generates a short motivational video for a prompt
// POST /ai/video-story
func (h *AIHandler) VideoStory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req VideoStoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return NewValidationError(c, "Prompt is required", []ValidationError{
			{Field: "prompt", Message: "Cannot be empty"},
		})
	}

	result, err := h.insightService.VideoStory(c.Request().Context(), userID, req.Prompt)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Video story generation failed")
		return NewUpstreamError(c, "The video service is unavailable right now")
	}

	log.Info().Int32("user_id", userID).Msg("Video story generated")

	return c.JSON(http.StatusOK, result)
}
