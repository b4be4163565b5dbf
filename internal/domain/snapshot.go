package domain

// Snapshot is the full set of domain collections representing one user's
// complete data at a point in time. Version increases with every mutation and
// is the tiebreaker when two saves race (last write wins by version).
type Snapshot struct {
	Transactions      []Transaction      `json:"transactions"`
	Budgets           []Budget           `json:"budgets"`
	FamilyMembers     []FamilyMember     `json:"familyMembers"`
	Goals             []Goal             `json:"goals"`
	RecurringPayments []RecurringPayment `json:"recurringPayments"`
	Accounts          []Account          `json:"accounts"`
	Investments       []Investment       `json:"investments"`
	Debts             []Debt             `json:"debts"`
	Version           uint64             `json:"version"`
}

// EmptySnapshot returns the state a user starts with: every collection empty
// except budgets, which carry the default set.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Transactions:      []Transaction{},
		Budgets:           DefaultBudgets(),
		FamilyMembers:     []FamilyMember{},
		Goals:             []Goal{},
		RecurringPayments: []RecurringPayment{},
		Accounts:          []Account{},
		Investments:       []Investment{},
		Debts:             []Debt{},
	}
}

// Clone returns a deep copy. Readers only ever see clones; the live
// collections stay owned by the state manager.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Budgets = append([]Budget(nil), s.Budgets...)
	out.FamilyMembers = append([]FamilyMember(nil), s.FamilyMembers...)
	out.Goals = append([]Goal(nil), s.Goals...)
	out.RecurringPayments = append([]RecurringPayment(nil), s.RecurringPayments...)
	out.Accounts = append([]Account(nil), s.Accounts...)
	out.Investments = append([]Investment(nil), s.Investments...)
	out.Debts = append([]Debt(nil), s.Debts...)
	return out
}

// MaxID returns the largest identifier present in any collection, used to
// seed the monotonic id allocator after a load.
func (s Snapshot) MaxID() int64 {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	for _, t := range s.Transactions {
		bump(t.ID)
	}
	for _, m := range s.FamilyMembers {
		bump(m.ID)
	}
	for _, g := range s.Goals {
		bump(g.ID)
	}
	for _, p := range s.RecurringPayments {
		bump(p.ID)
	}
	for _, a := range s.Accounts {
		bump(a.ID)
	}
	for _, i := range s.Investments {
		bump(i.ID)
	}
	for _, d := range s.Debts {
		bump(d.ID)
	}
	return max
}

// RawSnapshot mirrors the loosely typed payload the persistence gateway and
// snapshot imports produce: collections may be missing entirely and numeric
// fields may arrive as numbers, strings or null. Normalize is the only way a
// RawSnapshot enters memory.
type RawSnapshot struct {
	Transactions      []RawTransaction      `json:"transactions"`
	Budgets           []RawBudget           `json:"budgets"`
	FamilyMembers     []RawFamilyMember     `json:"familyMembers"`
	Goals             []RawGoal             `json:"goals"`
	RecurringPayments []RawRecurringPayment `json:"recurringPayments"`
	Accounts          []RawAccount          `json:"accounts"`
	Investments       []RawInvestment       `json:"investments"`
	Debts             []RawDebt             `json:"debts"`
	Version           any                   `json:"version"`
}

type RawTransaction struct {
	ID          any    `json:"id"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	Date        any    `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Member      string `json:"member"`
}

type RawBudget struct {
	Category string `json:"category"`
	Amount   any    `json:"amount"`
}

type RawFamilyMember struct {
	ID     any    `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

type RawGoal struct {
	ID            any    `json:"id"`
	Name          string `json:"name"`
	TargetAmount  any    `json:"targetAmount"`
	CurrentAmount any    `json:"currentAmount"`
}

type RawRecurringPayment struct {
	ID          any    `json:"id"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	DueDay      any    `json:"dueDay"`
}

type RawAccount struct {
	ID      any    `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance any    `json:"balance"`
}

type RawInvestment struct {
	ID            any    `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Quantity      any    `json:"quantity"`
	PurchasePrice any    `json:"purchasePrice"`
	CurrentValue  any    `json:"currentValue"`
}

type RawDebt struct {
	ID           any    `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	TotalAmount  any    `json:"totalAmount"`
	AmountPaid   any    `json:"amountPaid"`
	InterestRate any    `json:"interestRate"`
	MinPayment   any    `json:"minPayment"`
}

// Normalize applies the coercion rule to every known numeric field and parses
// dates, producing a fully populated snapshot. Missing collections default to
// empty; missing budgets default to the fixed set. There is no failure mode.
func (r RawSnapshot) Normalize() Snapshot {
	snap := Snapshot{
		Transactions:      make([]Transaction, 0, len(r.Transactions)),
		Budgets:           make([]Budget, 0, len(r.Budgets)),
		FamilyMembers:     make([]FamilyMember, 0, len(r.FamilyMembers)),
		Goals:             make([]Goal, 0, len(r.Goals)),
		RecurringPayments: make([]RecurringPayment, 0, len(r.RecurringPayments)),
		Accounts:          make([]Account, 0, len(r.Accounts)),
		Investments:       make([]Investment, 0, len(r.Investments)),
		Debts:             make([]Debt, 0, len(r.Debts)),
		Version:           uint64(CoerceInt(r.Version)),
	}

	for _, t := range r.Transactions {
		snap.Transactions = append(snap.Transactions, Transaction{
			ID:          CoerceInt(t.ID),
			Description: t.Description,
			Amount:      CoerceDecimal(t.Amount),
			Date:        CoerceDate(t.Date),
			Type:        TransactionType(t.Type),
			Category:    t.Category,
			Member:      t.Member,
		})
	}

	if r.Budgets == nil {
		snap.Budgets = DefaultBudgets()
	} else {
		for _, b := range r.Budgets {
			snap.Budgets = append(snap.Budgets, Budget{
				Category: b.Category,
				Amount:   CoerceDecimal(b.Amount),
			})
		}
	}

	for _, m := range r.FamilyMembers {
		snap.FamilyMembers = append(snap.FamilyMembers, FamilyMember{
			ID:     CoerceInt(m.ID),
			Name:   m.Name,
			Gender: Gender(m.Gender),
		})
	}

	for _, g := range r.Goals {
		snap.Goals = append(snap.Goals, Goal{
			ID:            CoerceInt(g.ID),
			Name:          g.Name,
			TargetAmount:  CoerceDecimal(g.TargetAmount),
			CurrentAmount: CoerceDecimal(g.CurrentAmount),
		})
	}

	for _, p := range r.RecurringPayments {
		snap.RecurringPayments = append(snap.RecurringPayments, RecurringPayment{
			ID:          CoerceInt(p.ID),
			Description: p.Description,
			Amount:      CoerceDecimal(p.Amount),
			DueDay:      int(CoerceInt(p.DueDay)),
		})
	}

	for _, a := range r.Accounts {
		snap.Accounts = append(snap.Accounts, Account{
			ID:      CoerceInt(a.ID),
			Name:    a.Name,
			Type:    a.Type,
			Balance: CoerceDecimal(a.Balance),
		})
	}

	for _, i := range r.Investments {
		snap.Investments = append(snap.Investments, Investment{
			ID:            CoerceInt(i.ID),
			Name:          i.Name,
			Type:          i.Type,
			Quantity:      CoerceDecimal(i.Quantity),
			PurchasePrice: CoerceDecimal(i.PurchasePrice),
			CurrentValue:  CoerceDecimal(i.CurrentValue),
		})
	}

	for _, d := range r.Debts {
		snap.Debts = append(snap.Debts, Debt{
			ID:           CoerceInt(d.ID),
			Name:         d.Name,
			Type:         d.Type,
			TotalAmount:  CoerceDecimal(d.TotalAmount),
			AmountPaid:   CoerceDecimal(d.AmountPaid),
			InterestRate: CoerceDecimal(d.InterestRate),
			MinPayment:   CoerceDecimal(d.MinPayment),
		})
	}

	return snap
}
