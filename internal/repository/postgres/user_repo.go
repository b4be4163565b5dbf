package postgres

import (
	"context"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by internal id
func (r *UserRepository) GetByID(id int32) (*domain.User, error) {
	ctx := context.Background()

	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject, email, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Subject, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetBySubject retrieves a user by the auth provider's subject claim
func (r *UserRepository) GetBySubject(subject string) (*domain.User, error) {
	ctx := context.Background()

	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject, email, created_at FROM users WHERE subject = $1`,
		subject,
	).Scan(&user.ID, &user.Subject, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateOrGetBySubject creates the user on first login and returns the
// existing row afterwards.
func (r *UserRepository) CreateOrGetBySubject(subject, email string) (*domain.User, error) {
	ctx := context.Background()

	var user domain.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (subject, email)
		 VALUES ($1, $2)
		 ON CONFLICT (subject) DO UPDATE SET email = EXCLUDED.email
		 RETURNING id, subject, email, created_at`,
		subject, email,
	).Scan(&user.ID, &user.Subject, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
