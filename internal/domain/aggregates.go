package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the derived income/expense aggregates for a transaction list.
// TotalIncome - TotalExpenses == Balance always holds exactly.
type Totals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// SummarizeTransactions computes the income/expense totals. Pure: the result
// depends only on the given list.
func SummarizeTransactions(transactions []Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			income = income.Add(t.Amount)
		case TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return Totals{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// CategorySpend is one entry of the expense breakdown.
type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseBreakdown groups expense transactions by category and returns the
// per-category sums sorted by amount descending. Ties keep a stable order by
// category name so output is deterministic.
func ExpenseBreakdown(transactions []Transaction) []CategorySpend {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != TransactionTypeExpense {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	out := make([]CategorySpend, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategorySpend{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MemberActivity is one member's spending inside the activity window.
type MemberActivity struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Gender      Gender          `json:"gender"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	TopCategory string          `json:"topCategory,omitempty"`
}

// familyActivityWindow is the rolling window family activity looks back over.
const familyActivityWindow = 30 * 24 * time.Hour

// maxActivityMembers caps the activity list at the sentinel member plus four
// named members.
const maxActivityMembers = 5

// FamilyActivity computes, for the 30 days ending at now, each member's total
// expense spend and single highest-spending category. The sentinel "Me"
// member comes first (it also absorbs unattributed transactions); named
// members follow in their stored order, truncated to five entries total.
func FamilyActivity(transactions []Transaction, members []FamilyMember, now time.Time) []MemberActivity {
	cutoff := now.Add(-familyActivityWindow)

	type memberSpend struct {
		total      decimal.Decimal
		byCategory map[string]decimal.Decimal
	}
	spend := make(map[string]*memberSpend)
	record := func(name string, t Transaction) {
		s, ok := spend[name]
		if !ok {
			s = &memberSpend{total: decimal.Zero, byCategory: make(map[string]decimal.Decimal)}
			spend[name] = s
		}
		s.total = s.total.Add(t.Amount)
		s.byCategory[t.Category] = s.byCategory[t.Category].Add(t.Amount)
	}

	for _, t := range transactions {
		if t.Type != TransactionTypeExpense {
			continue
		}
		if t.Date.Before(cutoff) || t.Date.After(now) {
			continue
		}
		name := t.Member
		if name == "" {
			name = SentinelMemberName
		}
		record(name, t)
	}

	roster := make([]FamilyMember, 0, maxActivityMembers)
	roster = append(roster, SentinelMember())
	for _, m := range members {
		if len(roster) == maxActivityMembers {
			break
		}
		roster = append(roster, m)
	}

	out := make([]MemberActivity, 0, len(roster))
	for _, m := range roster {
		activity := MemberActivity{
			ID:         m.ID,
			Name:       m.Name,
			Gender:     m.Gender,
			TotalSpent: decimal.Zero,
		}
		if s, ok := spend[m.Name]; ok {
			activity.TotalSpent = s.total
			activity.TopCategory = topCategory(s.byCategory)
		}
		out = append(out, activity)
	}
	return out
}

func topCategory(byCategory map[string]decimal.Decimal) string {
	var best string
	bestAmount := decimal.Zero
	for category, amount := range byCategory {
		if amount.GreaterThan(bestAmount) || (amount.Equal(bestAmount) && (best == "" || category < best)) {
			best = category
			bestAmount = amount
		}
	}
	return best
}
