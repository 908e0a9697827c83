package repositories

import (
	"context"

	"hima-kasku/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	DeleteCascade(ctx context.Context, id uint) error
	List(ctx context.Context, role, search string, offset, limit int) ([]*models.User, int64, error)
	ListStudents(ctx context.Context) ([]*models.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// DueRepository defines due repository interface
type DueRepository interface {
	Create(ctx context.Context, due *models.Due) error
	GetByID(ctx context.Context, id uint) (*models.Due, error)
	Update(ctx context.Context, due *models.Due) error
	Delete(ctx context.Context, id uint) error
	DeleteCascade(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Due, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

// TransactionRepository defines the append-only payment event repository.
// Transactions are immutable; there is deliberately no Update method.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Transaction, error)
	ListByDue(ctx context.Context, dueID uint) ([]*models.Transaction, error)
	SumsByUser(ctx context.Context, userID uint) ([]*models.PaymentSumRow, error)
	SumForPair(ctx context.Context, userID, dueID uint) (int64, error)
	SumsAll(ctx context.Context) ([]*models.PaymentSumRow, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountByDue(ctx context.Context, dueID uint) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
