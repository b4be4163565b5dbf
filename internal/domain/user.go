package domain

import "time"

// User represents an authenticated account. The auth provider's subject claim
// is the external identity; ID keys all persisted data.
type User struct {
	ID        int32     `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id int32) (*User, error)
	GetBySubject(subject string) (*User, error)
	CreateOrGetBySubject(subject, email string) (*User, error)
}

// SnapshotRepository is the persistence gateway: it loads and saves one
// user's full snapshot. Save applies last-write-wins by snapshot version and
// returns ErrStaleSnapshot when a newer version is already stored.
type SnapshotRepository interface {
	Load(userID int32) (RawSnapshot, error)
	Save(userID int32, snapshot Snapshot) error
}
