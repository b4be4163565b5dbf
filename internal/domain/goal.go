package domain

import "github.com/shopspring/decimal"

// Goal is a savings target. CurrentAmount always starts at zero regardless of
// what the caller supplies at creation time.
type Goal struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// GoalPatch carries a partial update for a goal. Nil fields are left
// untouched; the id can never change.
type GoalPatch struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
}
