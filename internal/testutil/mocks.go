package testutil

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/ai"
	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[int32]*domain.User
	NextID   int32
	CreateFn func(subject, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[string]*domain.User),
		ByID:   make(map[int32]*domain.User),
		NextID: 1,
	}
}

// GetByID retrieves a user by internal ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetBySubject retrieves a user by Auth0 subject
func (m *MockUserRepository) GetBySubject(subject string) (*domain.User, error) {
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetBySubject creates or retrieves a user by Auth0 subject
func (m *MockUserRepository) CreateOrGetBySubject(subject, email string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(subject, email)
	}
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        m.NextID,
		Subject:   subject,
		Email:     email,
		CreatedAt: time.Now(),
	}
	m.NextID++
	m.Users[subject] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Subject] = user
	m.ByID[user.ID] = user
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// MockSnapshotRepository is a mock implementation of domain.SnapshotRepository
type MockSnapshotRepository struct {
	mu        sync.Mutex
	Snapshots map[int32]domain.Snapshot
	Raw       map[int32]domain.RawSnapshot
	SaveCalls int
	LoadFn    func(userID int32) (domain.RawSnapshot, error)
	SaveFn    func(userID int32, snapshot domain.Snapshot) error
}

// NewMockSnapshotRepository creates a new MockSnapshotRepository
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{
		Snapshots: make(map[int32]domain.Snapshot),
		Raw:       make(map[int32]domain.RawSnapshot),
	}
}

// Load returns the stored raw snapshot for the user
func (m *MockSnapshotRepository) Load(userID int32) (domain.RawSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFn != nil {
		return m.LoadFn(userID)
	}
	if raw, ok := m.Raw[userID]; ok {
		return raw, nil
	}
	return domain.RawSnapshot{}, domain.ErrSnapshotNotFound
}

// Save stores the snapshot, honoring last-write-wins by version
func (m *MockSnapshotRepository) Save(userID int32, snapshot domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveFn != nil {
		return m.SaveFn(userID, snapshot)
	}
	if stored, ok := m.Snapshots[userID]; ok && stored.Version > snapshot.Version {
		return domain.ErrStaleSnapshot
	}
	m.Snapshots[userID] = snapshot.Clone()
	m.Raw[userID] = RawFromSnapshot(snapshot)
	return nil
}

// SavedCalls returns how many saves were attempted
func (m *MockSnapshotRepository) SavedCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCalls
}

// Stored returns the last snapshot saved for the user
func (m *MockSnapshotRepository) Stored(userID int32) (domain.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.Snapshots[userID]
	return snap, ok
}

// SetRaw seeds the stored raw snapshot for a user (helper for tests)
func (m *MockSnapshotRepository) SetRaw(userID int32, raw domain.RawSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Raw[userID] = raw
}

// RawFromSnapshot converts a typed snapshot back to the loosely typed form a
// gateway would return, for round-trip tests.
func RawFromSnapshot(s domain.Snapshot) domain.RawSnapshot {
	raw := domain.RawSnapshot{Version: int64(s.Version)}
	for _, t := range s.Transactions {
		raw.Transactions = append(raw.Transactions, domain.RawTransaction{
			ID:          t.ID,
			Description: t.Description,
			Amount:      t.Amount,
			Date:        t.Date,
			Type:        string(t.Type),
			Category:    t.Category,
			Member:      t.Member,
		})
	}
	for _, b := range s.Budgets {
		raw.Budgets = append(raw.Budgets, domain.RawBudget{Category: b.Category, Amount: b.Amount})
	}
	for _, m := range s.FamilyMembers {
		raw.FamilyMembers = append(raw.FamilyMembers, domain.RawFamilyMember{
			ID: m.ID, Name: m.Name, Gender: string(m.Gender),
		})
	}
	for _, g := range s.Goals {
		raw.Goals = append(raw.Goals, domain.RawGoal{
			ID: g.ID, Name: g.Name, TargetAmount: g.TargetAmount, CurrentAmount: g.CurrentAmount,
		})
	}
	for _, p := range s.RecurringPayments {
		raw.RecurringPayments = append(raw.RecurringPayments, domain.RawRecurringPayment{
			ID: p.ID, Description: p.Description, Amount: p.Amount, DueDay: p.DueDay,
		})
	}
	for _, a := range s.Accounts {
		raw.Accounts = append(raw.Accounts, domain.RawAccount{
			ID: a.ID, Name: a.Name, Type: a.Type, Balance: a.Balance,
		})
	}
	for _, i := range s.Investments {
		raw.Investments = append(raw.Investments, domain.RawInvestment{
			ID: i.ID, Name: i.Name, Type: i.Type,
			Quantity: i.Quantity, PurchasePrice: i.PurchasePrice, CurrentValue: i.CurrentValue,
		})
	}
	for _, d := range s.Debts {
		raw.Debts = append(raw.Debts, domain.RawDebt{
			ID: d.ID, Name: d.Name, Type: d.Type,
			TotalAmount: d.TotalAmount, AmountPaid: d.AmountPaid,
			InterestRate: d.InterestRate, MinPayment: d.MinPayment,
		})
	}
	return raw
}

// MockGenerator is a mock implementation of ai.Generator
type MockGenerator struct {
	TipFn       func(ctx context.Context, summary ai.SpendingSummary) (string, error)
	PlanFn      func(ctx context.Context, dream string) (*ai.DreamPlan, error)
	ImageFn     func(ctx context.Context, dream string) ([]byte, error)
	ChatFn      func(ctx context.Context, history []ai.ChatMessage, snapshot domain.Snapshot) (string, error)
	VideoFn     func(ctx context.Context, prompt string) (*ai.VideoResult, error)
	TipCalls    int
	LastSummary ai.SpendingSummary
}

// FinancialTip returns the configured tip
func (m *MockGenerator) FinancialTip(ctx context.Context, summary ai.SpendingSummary) (string, error) {
	m.TipCalls++
	m.LastSummary = summary
	if m.TipFn != nil {
		return m.TipFn(ctx, summary)
	}
	return "mock tip", nil
}

// DreamPlan returns the configured plan
func (m *MockGenerator) DreamPlan(ctx context.Context, dream string) (*ai.DreamPlan, error) {
	if m.PlanFn != nil {
		return m.PlanFn(ctx, dream)
	}
	return &ai.DreamPlan{Title: "mock plan"}, nil
}

// DreamImage returns the configured image bytes
func (m *MockGenerator) DreamImage(ctx context.Context, dream string) ([]byte, error) {
	if m.ImageFn != nil {
		return m.ImageFn(ctx, dream)
	}
	return nil, errors.New("no image configured")
}

// Chat returns the configured reply
func (m *MockGenerator) Chat(ctx context.Context, history []ai.ChatMessage, snapshot domain.Snapshot) (string, error) {
	if m.ChatFn != nil {
		return m.ChatFn(ctx, history, snapshot)
	}
	return "mock reply", nil
}

// VideoStory returns the configured video
func (m *MockGenerator) VideoStory(ctx context.Context, prompt string) (*ai.VideoResult, error) {
	if m.VideoFn != nil {
		return m.VideoFn(ctx, prompt)
	}
	return &ai.VideoResult{URI: "https://example.com/mock.mp4"}, nil
}

// MockMediaRepository is an in-memory implementation of storage.MediaRepository
type MockMediaRepository struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// NewMockMediaRepository creates a new MockMediaRepository
func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockMediaRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes the object
func (m *MockMediaRepository) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake URL embedding the object path
func (m *MockMediaRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://media.test/" + objectPath, nil
}

// ObjectCount returns how many objects are stored
func (m *MockMediaRepository) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
