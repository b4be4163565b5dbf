package ai

import (
	"context"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/shopspring/decimal"
)

// SpendingSummary is the read-only slice of recent activity the tip prompt is
// built from. The model never sees more than this.
type SpendingSummary struct {
	TotalExpenses decimal.Decimal
	Breakdown     []domain.CategorySpend
	RecentCount   int
}

// DreamPlan is the structured plan the model returns for a free-text dream.
type DreamPlan struct {
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	Timeline      string          `json:"timeline"`
	Steps         []string        `json:"steps"`
}

// ChatMessage is one turn of an assistant conversation. Role is "user" or
// "model".
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// VideoResult carries a generated video: either raw bytes to be stored, or a
// URI when the backend only returns a reference.
type VideoResult struct {
	URI      string
	Data     []byte
	MIMEType string
}

// Generator defines the model operations the insight service depends on.
type Generator interface {
	FinancialTip(ctx context.Context, summary SpendingSummary) (string, error)
	DreamPlan(ctx context.Context, dream string) (*DreamPlan, error)
	DreamImage(ctx context.Context, dream string) ([]byte, error)
	Chat(ctx context.Context, history []ChatMessage, snapshot domain.Snapshot) (string, error)
	VideoStory(ctx context.Context, prompt string) (*VideoResult, error)
}
