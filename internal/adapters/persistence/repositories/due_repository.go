package repositories

import (
	"context"

	"hima-kasku/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// dueRepository implements DueRepository interface
type dueRepository struct {
	db *gorm.DB
}

// NewDueRepository creates a new due repository
func NewDueRepository(db *gorm.DB) DueRepository {
	return &dueRepository{db: db}
}

// Create creates a new due
func (r *dueRepository) Create(ctx context.Context, due *models.Due) error {
	return r.db.WithContext(ctx).Create(due).Error
}

// GetByID gets a due by ID
func (r *dueRepository) GetByID(ctx context.Context, id uint) (*models.Due, error) {
	var due models.Due
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&due).Error
	if err != nil {
		return nil, err
	}
	return &due, nil
}

// Update updates a due
func (r *dueRepository) Update(ctx context.Context, due *models.Due) error {
	return r.db.WithContext(ctx).Save(due).Error
}

// Delete removes a due, freeing its title for reuse
func (r *dueRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Due{}, id).Error
}

// DeleteCascade deletes a due and its transactions in one store transaction
func (r *dueRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("due_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Due{}, id).Error
	})
}

// List lists all dues ordered by creation
func (r *dueRepository) List(ctx context.Context) ([]*models.Due, error) {
	var dues []*models.Due
	err := r.db.WithContext(ctx).Order("id ASC").Find(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

// ExistsByTitle checks if a due title exists (case-sensitive exact match)
func (r *dueRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Due{}).
		Where("title = BINARY ?", title).
		Count(&count).Error
	return count > 0, err
}
