package services

import (
	"context"
	"errors"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Status Projection (pure)
// ============================================================

// Classify derives the payment state for one (required, paid) pair.
// Paid wins on over-payment; there is no credit tracking.
func Classify(required, paid int64) domain.DueState {
	switch {
	case paid >= required:
		return domain.DueStatePaid
	case paid > 0:
		return domain.DueStatePartial
	default:
		return domain.DueStateUnpaid
	}
}

// ProjectPair derives the status of a single (user, due) pair from the
// due's required amount and the user's summed payments.
func ProjectPair(userID uint, due domain.Due, totalPaid int64) domain.DueStatus {
	remaining := due.RequiredAmount - totalPaid
	if remaining < 0 {
		remaining = 0
	}
	return domain.DueStatus{
		UserID:         userID,
		DueID:          due.ID,
		RequiredAmount: due.RequiredAmount,
		TotalPaid:      totalPaid,
		Remaining:      remaining,
		State:          Classify(due.RequiredAmount, totalPaid),
	}
}

// ReduceTransactions folds raw payment events into per-(user,due) sums,
// for callers that hold transaction rows instead of store-side aggregates.
func ReduceTransactions(txns []domain.Transaction) []domain.PaymentSum {
	totals := make(map[domain.StatusKey]int64, len(txns))
	order := make([]domain.StatusKey, 0, len(txns))
	for _, t := range txns {
		key := domain.StatusKey{UserID: t.UserID, DueID: t.DueID}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += t.PaidAmount
	}

	sums := make([]domain.PaymentSum, 0, len(order))
	for _, key := range order {
		sums = append(sums, domain.PaymentSum{
			UserID:    key.UserID,
			DueID:     key.DueID,
			TotalPaid: totals[key],
		})
	}
	return sums
}

// Project derives the status of every (student, active due) pair from
// immutable snapshots. This is the single place where "no payment record"
// becomes Unpaid; every consumer goes through here.
//
// Dues with RequiredAmount <= 0 are malformed and skipped, never an error.
// Sums for unknown users or dues are ignored rather than fabricating a
// status for a pair that has no obligation.
func Project(dues []domain.Due, students []domain.User, sums []domain.PaymentSum) map[domain.StatusKey]domain.DueStatus {
	paid := make(map[domain.StatusKey]int64, len(sums))
	for _, s := range sums {
		paid[domain.StatusKey{UserID: s.UserID, DueID: s.DueID}] += s.TotalPaid
	}

	out := make(map[domain.StatusKey]domain.DueStatus)
	for _, u := range students {
		if !u.IsStudent() {
			continue
		}
		for _, d := range dues {
			if !d.IsActive() {
				continue
			}
			key := domain.StatusKey{UserID: u.ID, DueID: d.ID}
			out[key] = ProjectPair(u.ID, d, paid[key])
		}
	}
	return out
}

// ============================================================
// Snapshot-fetching wrapper
// ============================================================

// StatusService snapshots the ledger store and runs the projection over it
type StatusService struct {
	userRepo repositories.UserRepository
	dueRepo  repositories.DueRepository
	txRepo   repositories.TransactionRepository
}

// NewStatusService creates a new status service
func NewStatusService(
	userRepo repositories.UserRepository,
	dueRepo repositories.DueRepository,
	txRepo repositories.TransactionRepository,
) *StatusService {
	return &StatusService{
		userRepo: userRepo,
		dueRepo:  dueRepo,
		txRepo:   txRepo,
	}
}

// Snapshot holds the immutable inputs of one projection run
type Snapshot struct {
	Dues     []domain.Due
	Students []domain.User
	Sums     []domain.PaymentSum
}

// SnapshotAll fetches dues, students and payment sums for a global projection
func (s *StatusService) SnapshotAll(ctx context.Context) (*Snapshot, error) {
	dueRows, err := s.dueRepo.List(ctx)
	if err != nil {
		return nil, storeErr("list dues", err)
	}
	studentRows, err := s.userRepo.ListStudents(ctx)
	if err != nil {
		return nil, storeErr("list students", err)
	}
	sumRows, err := s.txRepo.SumsAll(ctx)
	if err != nil {
		return nil, storeErr("sum transactions", err)
	}
	return &Snapshot{
		Dues:     duesToDomain(dueRows),
		Students: usersToDomain(studentRows),
		Sums:     sumsToDomain(sumRows),
	}, nil
}

// SnapshotUser fetches dues and one student's payment sums
func (s *StatusService) SnapshotUser(ctx context.Context, userID uint) (*Snapshot, error) {
	userRow, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	dueRows, err := s.dueRepo.List(ctx)
	if err != nil {
		return nil, storeErr("list dues", err)
	}
	sumRows, err := s.txRepo.SumsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("sum transactions", err)
	}
	return &Snapshot{
		Dues:     duesToDomain(dueRows),
		Students: []domain.User{*userToDomain(userRow)},
		Sums:     sumsToDomain(sumRows),
	}, nil
}

// ProjectAll projects statuses for every tracked student
func (s *StatusService) ProjectAll(ctx context.Context) (*Snapshot, map[domain.StatusKey]domain.DueStatus, error) {
	snap, err := s.SnapshotAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return snap, Project(snap.Dues, snap.Students, snap.Sums), nil
}

// ProjectUser projects statuses for one user
func (s *StatusService) ProjectUser(ctx context.Context, userID uint) (*Snapshot, map[domain.StatusKey]domain.DueStatus, error) {
	snap, err := s.SnapshotUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return snap, Project(snap.Dues, snap.Students, snap.Sums), nil
}

// ============================================================
// Helpers
// ============================================================

func storeErr(op string, err error) error {
	return &domain.StoreUnavailableError{Op: op, Err: err}
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func dueToDomain(m *models.Due) *domain.Due {
	return &domain.Due{
		ID:             m.ID,
		Title:          m.Title,
		RequiredAmount: m.RequiredAmount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func duesToDomain(rows []*models.Due) []domain.Due {
	out := make([]domain.Due, len(rows))
	for i, m := range rows {
		out[i] = *dueToDomain(m)
	}
	return out
}

func userToDomain(m *models.User) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Role:      domain.Role(m.Role),
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func usersToDomain(rows []*models.User) []domain.User {
	out := make([]domain.User, len(rows))
	for i, m := range rows {
		out[i] = *userToDomain(m)
	}
	return out
}

func sumsToDomain(rows []*models.PaymentSumRow) []domain.PaymentSum {
	out := make([]domain.PaymentSum, len(rows))
	for i, m := range rows {
		out[i] = domain.PaymentSum{UserID: m.UserID, DueID: m.DueID, TotalPaid: m.TotalPaid}
	}
	return out
}
