package services

import (
	"context"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/core/domain"
)

// PaymentService records dues payments and exposes payment history
type PaymentService struct {
	userRepo      repositories.UserRepository
	dueRepo       repositories.DueRepository
	txRepo        repositories.TransactionRepository
	statusService *StatusService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	userRepo repositories.UserRepository,
	dueRepo repositories.DueRepository,
	txRepo repositories.TransactionRepository,
	statusService *StatusService,
) *PaymentService {
	return &PaymentService{
		userRepo:      userRepo,
		dueRepo:       dueRepo,
		txRepo:        txRepo,
		statusService: statusService,
	}
}

// RecordPaymentInput carries one payment entry
type RecordPaymentInput struct {
	UserID uint
	DueID  uint
	Amount int64
	Note   string
}

// RecordPayment appends one payment transaction after validating the payer,
// the due and the amount. A payment larger than the remaining balance is
// rejected without writing anything, so the ledger can never hold an
// overpaying entry.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.TransactionResponse, error) {
	if input.Amount <= 0 {
		return nil, &domain.ValidationError{Field: "paid_amount", Reason: "must be greater than zero"}
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	if user.Role != string(domain.RoleStudent) {
		return nil, &domain.ValidationError{Field: "user_id", Reason: "payments can only be recorded for students"}
	}

	due, err := s.dueRepo.GetByID(ctx, input.DueID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrDueNotFound
		}
		return nil, storeErr("get due", err)
	}
	if due.RequiredAmount <= 0 {
		return nil, &domain.ValidationError{Field: "due_id", Reason: "due has no payable amount"}
	}

	paid, err := s.txRepo.SumForPair(ctx, input.UserID, input.DueID)
	if err != nil {
		return nil, storeErr("sum payments", err)
	}

	remaining := due.RequiredAmount - paid
	if remaining < 0 {
		remaining = 0
	}
	if input.Amount > remaining {
		return nil, &domain.OverpaymentError{Attempted: input.Amount, Remaining: remaining}
	}

	tx := &models.Transaction{
		UserID:     input.UserID,
		DueID:      input.DueID,
		PaidAmount: input.Amount,
		Note:       input.Note,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, storeErr("create transaction", err)
	}

	created, err := s.txRepo.GetByID(ctx, tx.ID)
	if err != nil {
		return tx.ToResponse(), nil
	}
	return created.ToResponse(), nil
}

// Outstanding lists the dues a student has not fully settled, with the
// remaining balance for each. Fully paid dues are omitted.
func (s *PaymentService) Outstanding(ctx context.Context, userID uint) ([]DueStatusItem, error) {
	snap, statuses, err := s.statusService.ProjectUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]DueStatusItem, 0)
	for _, d := range snap.Dues {
		st, ok := statuses[domain.StatusKey{UserID: userID, DueID: d.ID}]
		if !ok || st.State == domain.DueStatePaid {
			continue
		}
		items = append(items, DueStatusItem{
			DueID:          st.DueID,
			Title:          d.Title,
			RequiredAmount: st.RequiredAmount,
			TotalPaid:      st.TotalPaid,
			Remaining:      st.Remaining,
			State:          st.State,
		})
	}
	return items, nil
}

// History lists a student's payments, newest first
func (s *PaymentService) History(ctx context.Context, userID uint) ([]*models.TransactionResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}

	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}

	responses := make([]*models.TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = t.ToResponse()
	}
	return responses, nil
}

// ListByDue lists all payments recorded against one due, newest first
func (s *PaymentService) ListByDue(ctx context.Context, dueID uint) ([]*models.TransactionResponse, error) {
	if _, err := s.dueRepo.GetByID(ctx, dueID); err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrDueNotFound
		}
		return nil, storeErr("get due", err)
	}

	txns, err := s.txRepo.ListByDue(ctx, dueID)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}

	responses := make([]*models.TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = t.ToResponse()
	}
	return responses, nil
}
