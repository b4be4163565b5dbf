package postgres

import (
	"context"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository implements domain.SnapshotRepository using PostgreSQL.
// A save replaces the user's rows wholesale inside one transaction, the same
// contract the state manager assumes: the stored snapshot is always one
// complete, consistent state.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

var snapshotTables = []string{
	"transactions",
	"budgets",
	"family_members",
	"goals",
	"recurring_payments",
	"accounts",
	"investments",
	"debts",
}

// EnsureSchema creates the snapshot tables if they do not exist yet.
func (r *SnapshotRepository) EnsureSchema() error {
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			subject TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_versions (
			user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			version BIGINT NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			description TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			date TIMESTAMPTZ,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			member TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, category)
		)`,
		`CREATE TABLE IF NOT EXISTS family_members (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			name TEXT NOT NULL,
			target_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			current_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS recurring_payments (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			description TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			due_day INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			balance NUMERIC(14,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS investments (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			quantity NUMERIC(18,6) NOT NULL DEFAULT 0,
			purchase_price NUMERIC(14,2) NOT NULL DEFAULT 0,
			current_value NUMERIC(14,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			id BIGINT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			total_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			amount_paid NUMERIC(14,2) NOT NULL DEFAULT 0,
			interest_rate NUMERIC(7,3) NOT NULL DEFAULT 0,
			min_payment NUMERIC(14,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the user's complete snapshot. Numeric columns come back as text
// (or nil) so the state manager's coercion rule is the single place raw
// values are interpreted.
func (r *SnapshotRepository) Load(userID int32) (domain.RawSnapshot, error) {
	ctx := context.Background()
	var raw domain.RawSnapshot

	var version int64
	err := r.pool.QueryRow(ctx,
		`SELECT version FROM snapshot_versions WHERE user_id = $1`, userID,
	).Scan(&version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return raw, domain.ErrSnapshotNotFound
		}
		return raw, err
	}
	raw.Version = version

	rows, err := r.pool.Query(ctx,
		`SELECT id, description, amount::text, date, type, category, member
		 FROM transactions WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			t      domain.RawTransaction
			id     int64
			amount *string
			date   *time.Time
		)
		if err := rows.Scan(&id, &t.Description, &amount, &date, &t.Type, &t.Category, &t.Member); err != nil {
			rows.Close()
			return raw, err
		}
		t.ID = id
		t.Amount = derefString(amount)
		if date != nil {
			t.Date = *date
		}
		raw.Transactions = append(raw.Transactions, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT category, amount::text FROM budgets WHERE user_id = $1`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			b      domain.RawBudget
			amount *string
		)
		if err := rows.Scan(&b.Category, &amount); err != nil {
			rows.Close()
			return raw, err
		}
		b.Amount = derefString(amount)
		raw.Budgets = append(raw.Budgets, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, gender FROM family_members WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			m  domain.RawFamilyMember
			id int64
		)
		if err := rows.Scan(&id, &m.Name, &m.Gender); err != nil {
			rows.Close()
			return raw, err
		}
		m.ID = id
		raw.FamilyMembers = append(raw.FamilyMembers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, target_amount::text, current_amount::text
		 FROM goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			g               domain.RawGoal
			id              int64
			target, current *string
		)
		if err := rows.Scan(&id, &g.Name, &target, &current); err != nil {
			rows.Close()
			return raw, err
		}
		g.ID = id
		g.TargetAmount = derefString(target)
		g.CurrentAmount = derefString(current)
		raw.Goals = append(raw.Goals, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, description, amount::text, due_day
		 FROM recurring_payments WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			p      domain.RawRecurringPayment
			id     int64
			amount *string
			dueDay int
		)
		if err := rows.Scan(&id, &p.Description, &amount, &dueDay); err != nil {
			rows.Close()
			return raw, err
		}
		p.ID = id
		p.Amount = derefString(amount)
		p.DueDay = dueDay
		raw.RecurringPayments = append(raw.RecurringPayments, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, type, balance::text FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			a       domain.RawAccount
			id      int64
			balance *string
		)
		if err := rows.Scan(&id, &a.Name, &a.Type, &balance); err != nil {
			rows.Close()
			return raw, err
		}
		a.ID = id
		a.Balance = derefString(balance)
		raw.Accounts = append(raw.Accounts, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, type, quantity::text, purchase_price::text, current_value::text
		 FROM investments WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			inv                       domain.RawInvestment
			id                        int64
			quantity, purchase, value *string
		)
		if err := rows.Scan(&id, &inv.Name, &inv.Type, &quantity, &purchase, &value); err != nil {
			rows.Close()
			return raw, err
		}
		inv.ID = id
		inv.Quantity = derefString(quantity)
		inv.PurchasePrice = derefString(purchase)
		inv.CurrentValue = derefString(value)
		raw.Investments = append(raw.Investments, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, type, total_amount::text, amount_paid::text, interest_rate::text, min_payment::text
		 FROM debts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return raw, err
	}
	for rows.Next() {
		var (
			d                         domain.RawDebt
			id                        int64
			total, paid, rate, minPay *string
		)
		if err := rows.Scan(&id, &d.Name, &d.Type, &total, &paid, &rate, &minPay); err != nil {
			rows.Close()
			return raw, err
		}
		d.ID = id
		d.TotalAmount = derefString(total)
		d.AmountPaid = derefString(paid)
		d.InterestRate = derefString(rate)
		d.MinPayment = derefString(minPay)
		raw.Debts = append(raw.Debts, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return raw, err
	}

	return raw, nil
}

// Save replaces the user's stored snapshot in one transaction. Last write
// wins by version: if a newer version is already stored (a racing save from
// the same user landed first), the whole save is skipped.
func (r *SnapshotRepository) Save(userID int32, snapshot domain.Snapshot) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var stored int64
	err = tx.QueryRow(ctx,
		`SELECT version FROM snapshot_versions WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&stored)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}
	if err == nil && stored > int64(snapshot.Version) {
		return domain.ErrStaleSnapshot
	}

	for _, table := range snapshotTables {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return err
		}
	}

	for _, t := range snapshot.Transactions {
		var date any
		if !t.Date.IsZero() {
			date = t.Date
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO transactions (user_id, id, description, amount, date, type, category, member)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, t.ID, t.Description, t.Amount, date, string(t.Type), t.Category, t.Member)
		if err != nil {
			return err
		}
	}

	for _, b := range snapshot.Budgets {
		_, err := tx.Exec(ctx,
			`INSERT INTO budgets (user_id, category, amount) VALUES ($1, $2, $3)`,
			userID, b.Category, b.Amount)
		if err != nil {
			return err
		}
	}

	for _, m := range snapshot.FamilyMembers {
		_, err := tx.Exec(ctx,
			`INSERT INTO family_members (user_id, id, name, gender) VALUES ($1, $2, $3, $4)`,
			userID, m.ID, m.Name, string(m.Gender))
		if err != nil {
			return err
		}
	}

	for _, g := range snapshot.Goals {
		_, err := tx.Exec(ctx,
			`INSERT INTO goals (user_id, id, name, target_amount, current_amount)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, g.ID, g.Name, g.TargetAmount, g.CurrentAmount)
		if err != nil {
			return err
		}
	}

	for _, p := range snapshot.RecurringPayments {
		_, err := tx.Exec(ctx,
			`INSERT INTO recurring_payments (user_id, id, description, amount, due_day)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, p.ID, p.Description, p.Amount, p.DueDay)
		if err != nil {
			return err
		}
	}

	for _, a := range snapshot.Accounts {
		_, err := tx.Exec(ctx,
			`INSERT INTO accounts (user_id, id, name, type, balance) VALUES ($1, $2, $3, $4, $5)`,
			userID, a.ID, a.Name, a.Type, a.Balance)
		if err != nil {
			return err
		}
	}

	for _, inv := range snapshot.Investments {
		_, err := tx.Exec(ctx,
			`INSERT INTO investments (user_id, id, name, type, quantity, purchase_price, current_value)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, inv.ID, inv.Name, inv.Type, inv.Quantity, inv.PurchasePrice, inv.CurrentValue)
		if err != nil {
			return err
		}
	}

	for _, d := range snapshot.Debts {
		_, err := tx.Exec(ctx,
			`INSERT INTO debts (user_id, id, name, type, total_amount, amount_paid, interest_rate, min_payment)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, d.ID, d.Name, d.Type, d.TotalAmount, d.AmountPaid, d.InterestRate, d.MinPayment)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshot_versions (user_id, version, saved_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET version = EXCLUDED.version, saved_at = now()`,
		userID, int64(snapshot.Version))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
