package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Ledger Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Role      string    `gorm:"size:20;default:'STUDENT'" json:"role"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Due represents dues table. Deletes are hard deletes: a removed due
// frees its title for reuse instead of holding the unique index hostage.
type Due struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"uniqueIndex;size:150;not null" json:"title"`
	RequiredAmount int64     `gorm:"not null" json:"required_amount"`
	Description    string    `gorm:"size:255" json:"description"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Due) TableName() string {
	return "dues"
}

// Transaction represents transactions table (append-only payment events)
type Transaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_tx_user_due" json:"user_id"`
	DueID      uint      `gorm:"not null;index:idx_tx_user_due" json:"due_id"`
	PaidAmount int64     `gorm:"not null" json:"paid_amount"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Due  *Due  `gorm:"foreignKey:DueID" json:"due,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionResponse DTO
type TransactionResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	DueID      uint      `json:"due_id"`
	DueTitle   string    `json:"due_title,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	PaidAmount int64     `json:"paid_amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		DueID:      t.DueID,
		PaidAmount: t.PaidAmount,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
	}
	if t.Due != nil {
		resp.DueTitle = t.Due.Title
	}
	if t.User != nil {
		resp.UserName = t.User.Name
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PaymentSumRow is the scan target for the per-(user,due) aggregate query
type PaymentSumRow struct {
	UserID    uint  `json:"user_id"`
	DueID     uint  `json:"due_id"`
	TotalPaid int64 `json:"total_paid"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all ledger tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Due{},
		&Transaction{},
	)
}
