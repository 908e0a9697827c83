package services

import (
	"context"
	"strings"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/core/domain"
)

// DueService manages the due catalog
type DueService struct {
	dueRepo repositories.DueRepository
	txRepo  repositories.TransactionRepository
}

// NewDueService creates a new due service
func NewDueService(dueRepo repositories.DueRepository, txRepo repositories.TransactionRepository) *DueService {
	return &DueService{
		dueRepo: dueRepo,
		txRepo:  txRepo,
	}
}

// CreateDueInput carries a new catalog entry
type CreateDueInput struct {
	Title          string
	RequiredAmount int64
	Description    string
}

// CreateDue registers a new due. Titles are unique across the catalog.
func (s *DueService) CreateDue(ctx context.Context, input CreateDueInput) (*models.Due, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if input.RequiredAmount <= 0 {
		return nil, &domain.ValidationError{Field: "required_amount", Reason: "must be greater than zero"}
	}

	exists, err := s.dueRepo.ExistsByTitle(ctx, title)
	if err != nil {
		return nil, storeErr("check due title", err)
	}
	if exists {
		return nil, &domain.DuplicateError{Entity: "due", Value: title}
	}

	due := &models.Due{
		Title:          title,
		RequiredAmount: input.RequiredAmount,
		Description:    input.Description,
	}
	if err := s.dueRepo.Create(ctx, due); err != nil {
		return nil, storeErr("create due", err)
	}
	return due, nil
}

// UpdateDueInput carries partial catalog updates; nil fields are left unchanged
type UpdateDueInput struct {
	Title          *string
	RequiredAmount *int64
	Description    *string
}

// UpdateDue patches a catalog entry. A changed required amount takes effect
// immediately: every status involving this due is projected against the new
// amount from now on.
func (s *DueService) UpdateDue(ctx context.Context, id uint, input UpdateDueInput) (*models.Due, error) {
	due, err := s.dueRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrDueNotFound
		}
		return nil, storeErr("get due", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if title != due.Title {
			exists, err := s.dueRepo.ExistsByTitle(ctx, title)
			if err != nil {
				return nil, storeErr("check due title", err)
			}
			if exists {
				return nil, &domain.DuplicateError{Entity: "due", Value: title}
			}
			due.Title = title
		}
	}
	if input.RequiredAmount != nil {
		if *input.RequiredAmount <= 0 {
			return nil, &domain.ValidationError{Field: "required_amount", Reason: "must be greater than zero"}
		}
		due.RequiredAmount = *input.RequiredAmount
	}
	if input.Description != nil {
		due.Description = *input.Description
	}

	if err := s.dueRepo.Update(ctx, due); err != nil {
		return nil, storeErr("update due", err)
	}
	return due, nil
}

// DeleteDue removes a catalog entry. A due with recorded payments is
// protected: deletion fails with a conflict unless cascade is set, in which
// case the due and all of its transactions are removed atomically.
func (s *DueService) DeleteDue(ctx context.Context, id uint, cascade bool) error {
	due, err := s.dueRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return domain.ErrDueNotFound
		}
		return storeErr("get due", err)
	}

	count, err := s.txRepo.CountByDue(ctx, due.ID)
	if err != nil {
		return storeErr("count transactions", err)
	}

	if count > 0 {
		if !cascade {
			return &domain.ReferentialConflictError{Entity: "due", ID: due.ID, Transactions: count}
		}
		if err := s.dueRepo.DeleteCascade(ctx, due.ID); err != nil {
			return storeErr("delete due", err)
		}
		return nil
	}

	if err := s.dueRepo.Delete(ctx, due.ID); err != nil {
		return storeErr("delete due", err)
	}
	return nil
}

// GetDue retrieves one catalog entry
func (s *DueService) GetDue(ctx context.Context, id uint) (*models.Due, error) {
	due, err := s.dueRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrDueNotFound
		}
		return nil, storeErr("get due", err)
	}
	return due, nil
}

// ListDues lists the full due catalog
func (s *DueService) ListDues(ctx context.Context) ([]*models.Due, error) {
	dues, err := s.dueRepo.List(ctx)
	if err != nil {
		return nil, storeErr("list dues", err)
	}
	return dues, nil
}
