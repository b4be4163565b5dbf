package domain

import "github.com/shopspring/decimal"

// Account, Investment and Debt are held and normalized by the state manager
// but have no mutation operations wired in; they round-trip through snapshot
// load and save untouched.

type Account struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

type Investment struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
}

type Debt struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	InterestRate decimal.Decimal `json:"interestRate"`
	MinPayment   decimal.Decimal `json:"minPayment"`
}
