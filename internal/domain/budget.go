package domain

import "github.com/shopspring/decimal"

// Budget is a spending limit for one expense category. The category string is
// the identity; budgets are seeded once and only their amounts change.
type Budget struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DefaultBudgets returns the fixed budget set a new user starts with.
func DefaultBudgets() []Budget {
	return []Budget{
		{Category: "Groceries", Amount: decimal.NewFromInt(15000)},
		{Category: "Dining Out", Amount: decimal.NewFromInt(5000)},
		{Category: "Shopping", Amount: decimal.NewFromInt(8000)},
		{Category: "Transportation", Amount: decimal.NewFromInt(3000)},
		{Category: "Entertainment", Amount: decimal.NewFromInt(4000)},
		{Category: "Health", Amount: decimal.NewFromInt(2000)},
		{Category: "Agriculture", Amount: decimal.NewFromInt(1000)},
	}
}
