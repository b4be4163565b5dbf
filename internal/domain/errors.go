package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget category not found")
	ErrMemberNotFound      = errors.New("family member not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrRecurringNotFound   = errors.New("recurring payment not found")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrMemberExists        = errors.New("family member already exists")
	ErrMemberReserved      = errors.New("member name is reserved")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidGender       = errors.New("invalid gender")
	ErrInvalidDueDay       = errors.New("due day must be between 1 and 31")
	ErrStaleSnapshot       = errors.New("snapshot version is older than stored version")
)
