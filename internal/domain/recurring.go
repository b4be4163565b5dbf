package domain

import "github.com/shopspring/decimal"

// RecurringPayment is a monthly bill due on a fixed day of the month.
// The only lifecycle operations are add and delete.
type RecurringPayment struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDay      int             `json:"dueDay"`
}

const (
	MinDueDay = 1
	MaxDueDay = 31
)
