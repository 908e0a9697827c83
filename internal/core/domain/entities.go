package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// User represents a tracked user in the domain layer
type User struct {
	ID        uint
	Name      string // display name, unique
	Role      Role
	Password  string // hashed; admins only, always empty for students
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStudent reports whether the user is a tracked student
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Due represents a named fee obligation owed by every active student
type Due struct {
	ID             uint
	Title          string // unique, case-sensitive
	RequiredAmount int64  // rupiah; a due with RequiredAmount <= 0 is ignored
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the due takes part in status computation
func (d *Due) IsActive() bool {
	return d.RequiredAmount > 0
}

// Transaction is one immutable payment event against a (user, due) pair.
// Rows are never updated in place; corrections are new transactions.
type Transaction struct {
	ID         uint
	UserID     uint
	DueID      uint
	PaidAmount int64
	Note       string
	CreatedAt  time.Time
}

// PaymentSum is the store-side aggregate of one user's payments toward one due
type PaymentSum struct {
	UserID    uint
	DueID     uint
	TotalPaid int64
}

// DueState is the derived payment state for a (user, due) pair
type DueState string

const (
	DueStatePaid    DueState = "PAID"
	DueStatePartial DueState = "PARTIAL"
	DueStateUnpaid  DueState = "UNPAID"
)

// DueStatus is the derived status for a (user, due) pair. It is a pure
// projection of transaction history and never the source of truth.
type DueStatus struct {
	UserID         uint
	DueID          uint
	RequiredAmount int64
	TotalPaid      int64
	Remaining      int64 // max(0, RequiredAmount - TotalPaid)
	State          DueState
}

// StatusKey identifies one (user, due) pair in a projection
type StatusKey struct {
	UserID uint
	DueID  uint
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
