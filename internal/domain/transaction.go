package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense record. Transactions are never
// mutated in place; the only lifecycle operations are add and delete.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Member      string          `json:"member,omitempty"`
}

// IncomeCategories and ExpenseCategories are the fixed category lists offered
// per transaction type.
var (
	IncomeCategories = []string{
		"Salary",
		"Freelance",
		"Bonus",
		"Investment",
		"Other",
	}

	ExpenseCategories = []string{
		"Groceries",
		"Rent/Mortgage",
		"Utilities",
		"Transportation",
		"Dining Out",
		"Entertainment",
		"Shopping",
		"Health",
		"Education",
		"Agriculture",
		"Other",
	}
)

// ValidCategory reports whether category belongs to the fixed list for the
// given transaction type.
func ValidCategory(t TransactionType, category string) bool {
	list := ExpenseCategories
	if t == TransactionTypeIncome {
		list = IncomeCategories
	}
	for _, c := range list {
		if c == category {
			return true
		}
	}
	return false
}

const (
	MaxDescriptionLength = 255
)
