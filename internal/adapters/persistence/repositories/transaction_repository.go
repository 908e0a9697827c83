package repositories

import (
	"context"

	"hima-kasku/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a new payment event
func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByID retrieves one transaction with its relations
func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Due").
		First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByUser lists a user's transactions, newest first
func (r *transactionRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Due").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// ListByDue lists all transactions against one due, newest first
func (r *transactionRepository) ListByDue(ctx context.Context, dueID uint) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("due_id = ?", dueID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// SumsByUser returns per-due paid totals for one user
func (r *transactionRepository) SumsByUser(ctx context.Context, userID uint) ([]*models.PaymentSumRow, error) {
	var sums []*models.PaymentSumRow
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("user_id, due_id, COALESCE(SUM(paid_amount), 0) as total_paid").
		Where("user_id = ?", userID).
		Group("user_id, due_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	return sums, nil
}

// SumsAll returns paid totals for every (user, due) pair with activity
func (r *transactionRepository) SumsAll(ctx context.Context) ([]*models.PaymentSumRow, error) {
	var sums []*models.PaymentSumRow
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("user_id, due_id, COALESCE(SUM(paid_amount), 0) as total_paid").
		Group("user_id, due_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	return sums, nil
}

// SumForPair returns the paid total for one (user, due) pair
func (r *transactionRepository) SumForPair(ctx context.Context, userID, dueID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("COALESCE(SUM(paid_amount), 0)").
		Where("user_id = ? AND due_id = ?", userID, dueID).
		Scan(&total).Error
	return total, err
}

// CountByUser counts a user's transactions
func (r *transactionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByDue counts transactions against one due
func (r *transactionRepository) CountByDue(ctx context.Context, dueID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("due_id = ?", dueID).Count(&count).Error
	return count, err
}
