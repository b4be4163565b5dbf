package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the domain state manager: the sole owner of one user's in-memory
// snapshot. It normalizes data on load, applies mutations, memoizes derived
// aggregates and schedules debounced saves to the persistence gateway.
//
// The original single-threaded execution model becomes mutex-serialized
// operations here; every operation runs to completion under the lock, so no
// caller ever observes an intermediate state.
type Store struct {
	mu      sync.Mutex
	snap    domain.Snapshot
	loaded  bool
	session uuid.UUID
	nextID  int64

	// totals caches the income/expense aggregates; any transaction mutation
	// clears it so reads always reflect the current list.
	totals *domain.Totals

	now   func() time.Time
	saver *autosaver
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAutosave installs a debounced save trigger. Mutations occurring within
// delay of each other coalesce into a single save carrying the latest state.
func WithAutosave(delay time.Duration, save SaveFunc) Option {
	return func(s *Store) { s.saver = newAutosaver(delay, save) }
}

// New creates a Store holding the default empty snapshot. Callers load real
// data with LoadSnapshot before the store is considered active.
func New(opts ...Option) *Store {
	s := &Store{
		snap:    domain.EmptySnapshot(),
		session: uuid.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the identity of the current lifetime of this store. It
// changes on every reset; save results tagged with an older session are
// stale and must be discarded.
func (s *Store) Session() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Loaded reports whether a snapshot load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Snapshot returns a deep copy of the current snapshot.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// LoadSnapshot normalizes raw and replaces the current snapshot in one
// atomic assignment. Malformed numeric and date fields degrade to safe
// defaults; there is no failure mode. The version continues from whichever is
// newer, the incoming snapshot or the state being replaced, so a wholesale
// replace still wins a race against a save of the old state.
func (s *Store) LoadSnapshot(raw domain.RawSnapshot) {
	snap := raw.Normalize()
	sortTransactions(snap.Transactions)
	sortMembers(snap.FamilyMembers)

	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.snap.Version + 1; snap.Version < v {
		snap.Version = v
	}
	s.snap = snap
	s.loaded = true
	s.totals = nil
	s.seedIDsLocked()
}

// ResetToDefaults clears every collection (budgets reset to the default set)
// and starts a new session. Any pending save is abandoned: state after a
// reset must never be overwritten by data from before it.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = domain.EmptySnapshot()
	s.loaded = false
	s.totals = nil
	s.session = uuid.New()
	s.nextID = 0
	if s.saver != nil {
		s.saver.cancel()
	}
}

// Close stops any pending autosave without firing it.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saver != nil {
		s.saver.cancel()
	}
}

// seedIDsLocked seeds the monotonic id allocator above every id present in
// the loaded snapshot.
func (s *Store) seedIDsLocked() {
	s.nextID = s.snap.MaxID()
}

// allocateIDLocked hands out ids that keep their unix-millisecond flavor but
// can never collide, even for two calls within the same clock tick.
func (s *Store) allocateIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.nextID {
		id = s.nextID + 1
	}
	s.nextID = id
	return id
}

// dirtyLocked records a completed mutation: bumps the snapshot version and
// schedules a save.
func (s *Store) dirtyLocked() {
	s.snap.Version++
	if s.saver != nil {
		s.saver.schedule(s)
	}
}

// TransactionInput holds the caller-supplied fields for a new transaction.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        domain.TransactionType
	Category    string
	Member      string
}

// AddTransaction validates the input, assigns a fresh id and inserts the
// transaction at its sorted position (date descending).
func (s *Store) AddTransaction(input TransactionInput) (domain.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return domain.Transaction{}, domain.ErrNameRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return domain.Transaction{}, domain.ErrNameTooLong
	}
	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		return domain.Transaction{}, domain.ErrInvalidType
	}
	if input.Amount.IsNegative() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}
	if input.Category != "" && !domain.ValidCategory(input.Type, input.Category) {
		return domain.Transaction{}, domain.ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Transaction{
		ID:          s.allocateIDLocked(),
		Description: description,
		Amount:      input.Amount,
		Date:        input.Date,
		Type:        input.Type,
		Category:    input.Category,
		Member:      strings.TrimSpace(input.Member),
	}
	s.snap.Transactions = append([]domain.Transaction{t}, s.snap.Transactions...)
	sortTransactions(s.snap.Transactions)
	s.totals = nil
	s.dirtyLocked()
	return t, nil
}

// DeleteTransaction removes the matching transaction. The state is left
// untouched when the id is absent; the caller is told via ErrTransactionNotFound.
func (s *Store) DeleteTransaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.snap.Transactions {
		if t.ID == id {
			s.snap.Transactions = append(s.snap.Transactions[:i], s.snap.Transactions[i+1:]...)
			s.totals = nil
			s.dirtyLocked()
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// UpdateBudget replaces the amount of the budget matching category. It never
// creates a new budget row; the category set is fixed.
func (s *Store) UpdateBudget(category string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Budgets {
		if s.snap.Budgets[i].Category == category {
			s.snap.Budgets[i].Amount = amount
			s.dirtyLocked()
			return nil
		}
	}
	return domain.ErrBudgetNotFound
}

// AddFamilyMember inserts a new member and re-sorts the collection by name.
// Empty names, the reserved sentinel name and case-insensitive duplicates are
// rejected without any state change.
func (s *Store) AddFamilyMember(name string, gender domain.Gender) (domain.FamilyMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FamilyMember{}, domain.ErrNameRequired
	}
	if strings.EqualFold(name, domain.SentinelMemberName) {
		return domain.FamilyMember{}, domain.ErrMemberReserved
	}
	if !domain.ValidGender(gender) {
		return domain.FamilyMember{}, domain.ErrInvalidGender
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.snap.FamilyMembers {
		if strings.EqualFold(m.Name, name) {
			return domain.FamilyMember{}, domain.ErrMemberExists
		}
	}

	member := domain.FamilyMember{
		ID:     s.allocateIDLocked(),
		Name:   name,
		Gender: gender,
	}
	s.snap.FamilyMembers = append(s.snap.FamilyMembers, member)
	sortMembers(s.snap.FamilyMembers)
	s.dirtyLocked()
	return member, nil
}

// DeleteFamilyMember removes the member and, in the same critical section,
// reassigns every transaction attributed to it to the sentinel "Me" member.
// No intermediate state is observable where the member is gone but
// transactions still reference the stale name.
func (s *Store) DeleteFamilyMember(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.snap.FamilyMembers {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrMemberNotFound
	}

	name := s.snap.FamilyMembers[idx].Name
	s.snap.FamilyMembers = append(s.snap.FamilyMembers[:idx], s.snap.FamilyMembers[idx+1:]...)
	for i := range s.snap.Transactions {
		if s.snap.Transactions[i].Member == name {
			s.snap.Transactions[i].Member = domain.SentinelMemberName
		}
	}
	s.totals = nil
	s.dirtyLocked()
	return nil
}

// GoalInput holds the caller-supplied fields for a new goal. Any current
// amount the caller provides is ignored; goals always start at zero.
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
}

// AddGoal appends a new goal with CurrentAmount forced to zero.
func (s *Store) AddGoal(input GoalInput) (domain.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Goal{}, domain.ErrNameRequired
	}
	if input.TargetAmount.IsNegative() {
		return domain.Goal{}, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goal := domain.Goal{
		ID:            s.allocateIDLocked(),
		Name:          name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: decimal.Zero,
	}
	s.snap.Goals = append(s.snap.Goals, goal)
	s.dirtyLocked()
	return goal, nil
}

// UpdateGoal merges the supplied fields into the matching goal.
func (s *Store) UpdateGoal(id int64, patch domain.GoalPatch) (domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Goals {
		if s.snap.Goals[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.snap.Goals[i].Name = *patch.Name
		}
		if patch.TargetAmount != nil {
			s.snap.Goals[i].TargetAmount = *patch.TargetAmount
		}
		if patch.CurrentAmount != nil {
			s.snap.Goals[i].CurrentAmount = *patch.CurrentAmount
		}
		s.dirtyLocked()
		return s.snap.Goals[i], nil
	}
	return domain.Goal{}, domain.ErrGoalNotFound
}

// DeleteGoal removes the matching goal.
func (s *Store) DeleteGoal(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.snap.Goals {
		if g.ID == id {
			s.snap.Goals = append(s.snap.Goals[:i], s.snap.Goals[i+1:]...)
			s.dirtyLocked()
			return nil
		}
	}
	return domain.ErrGoalNotFound
}

// RecurringPaymentInput holds the caller-supplied fields for a new recurring
// payment.
type RecurringPaymentInput struct {
	Description string
	Amount      decimal.Decimal
	DueDay      int
}

// AddRecurringPayment appends a new recurring payment.
func (s *Store) AddRecurringPayment(input RecurringPaymentInput) (domain.RecurringPayment, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return domain.RecurringPayment{}, domain.ErrNameRequired
	}
	if input.Amount.IsNegative() {
		return domain.RecurringPayment{}, domain.ErrInvalidAmount
	}
	if input.DueDay < domain.MinDueDay || input.DueDay > domain.MaxDueDay {
		return domain.RecurringPayment{}, domain.ErrInvalidDueDay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payment := domain.RecurringPayment{
		ID:          s.allocateIDLocked(),
		Description: description,
		Amount:      input.Amount,
		DueDay:      input.DueDay,
	}
	s.snap.RecurringPayments = append(s.snap.RecurringPayments, payment)
	s.dirtyLocked()
	return payment, nil
}

// DeleteRecurringPayment removes the matching recurring payment.
func (s *Store) DeleteRecurringPayment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.snap.RecurringPayments {
		if p.ID == id {
			s.snap.RecurringPayments = append(s.snap.RecurringPayments[:i], s.snap.RecurringPayments[i+1:]...)
			s.dirtyLocked()
			return nil
		}
	}
	return domain.ErrRecurringNotFound
}

// Totals returns the memoized income/expense aggregates, recomputing only
// when a transaction mutation invalidated the cache.
func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.totals == nil {
		t := domain.SummarizeTransactions(s.snap.Transactions)
		s.totals = &t
	}
	return *s.totals
}

// ExpenseBreakdown returns per-category expense sums, largest first.
func (s *Store) ExpenseBreakdown() []domain.CategorySpend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ExpenseBreakdown(s.snap.Transactions)
}

// FamilyActivity returns the rolling 30-day spending activity per member.
func (s *Store) FamilyActivity() []domain.MemberActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FamilyActivity(s.snap.Transactions, s.snap.FamilyMembers, s.now())
}

// sortTransactions orders by date descending. The sort is stable so a newly
// prepended transaction stays ahead of older ones sharing its date.
func sortTransactions(transactions []domain.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

// sortMembers orders alphabetically, ignoring case.
func sortMembers(members []domain.FamilyMember) {
	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].Name) < strings.ToLower(members[j].Name)
	})
}
