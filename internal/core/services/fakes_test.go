package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"hima-kasku/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. Not-found is reported
// the same way the real repositories do.
var errNotFound = gorm.ErrRecordNotFound

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*models.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) DeleteCascade(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role, search string, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !strings.Contains(u.Name, search) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeUserRepo) ListStudents(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Role == "STUDENT" {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, u := range r.users {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeDueRepo struct {
	dues   map[uint]*models.Due
	nextID uint
}

func newFakeDueRepo() *fakeDueRepo {
	return &fakeDueRepo{dues: make(map[uint]*models.Due), nextID: 1}
}

func (r *fakeDueRepo) add(d *models.Due) *models.Due {
	if d.ID == 0 {
		d.ID = r.nextID
		r.nextID++
	} else if d.ID >= r.nextID {
		r.nextID = d.ID + 1
	}
	r.dues[d.ID] = d
	return d
}

func (r *fakeDueRepo) Create(_ context.Context, due *models.Due) error {
	r.add(due)
	return nil
}

func (r *fakeDueRepo) GetByID(_ context.Context, id uint) (*models.Due, error) {
	d, ok := r.dues[id]
	if !ok {
		return nil, errNotFound
	}
	return d, nil
}

func (r *fakeDueRepo) Update(_ context.Context, due *models.Due) error {
	r.dues[due.ID] = due
	return nil
}

func (r *fakeDueRepo) Delete(_ context.Context, id uint) error {
	delete(r.dues, id)
	return nil
}

func (r *fakeDueRepo) DeleteCascade(_ context.Context, id uint) error {
	delete(r.dues, id)
	return nil
}

func (r *fakeDueRepo) List(_ context.Context) ([]*models.Due, error) {
	var out []*models.Due
	for _, d := range r.dues {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDueRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, d := range r.dues {
		if d.Title == title {
			return true, nil
		}
	}
	return false, nil
}

type fakeTransactionRepo struct {
	txns   []*models.Transaction
	nextID uint
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{nextID: 1}
}

func (r *fakeTransactionRepo) add(t *models.Transaction) *models.Transaction {
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.txns = append(r.txns, t)
	return t
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *models.Transaction) error {
	r.add(tx)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uint) (*models.Transaction, error) {
	for _, t := range r.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID uint) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) ListByDue(_ context.Context, dueID uint) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range r.txns {
		if t.DueID == dueID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) sums(filter func(*models.Transaction) bool) []*models.PaymentSumRow {
	type key struct{ user, due uint }
	totals := make(map[key]int64)
	var order []key
	for _, t := range r.txns {
		if !filter(t) {
			continue
		}
		k := key{t.UserID, t.DueID}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += t.PaidAmount
	}
	out := make([]*models.PaymentSumRow, 0, len(order))
	for _, k := range order {
		out = append(out, &models.PaymentSumRow{UserID: k.user, DueID: k.due, TotalPaid: totals[k]})
	}
	return out
}

func (r *fakeTransactionRepo) SumsByUser(_ context.Context, userID uint) ([]*models.PaymentSumRow, error) {
	return r.sums(func(t *models.Transaction) bool { return t.UserID == userID }), nil
}

func (r *fakeTransactionRepo) SumsAll(_ context.Context) ([]*models.PaymentSumRow, error) {
	return r.sums(func(*models.Transaction) bool { return true }), nil
}

func (r *fakeTransactionRepo) SumForPair(_ context.Context, userID, dueID uint) (int64, error) {
	var total int64
	for _, t := range r.txns {
		if t.UserID == userID && t.DueID == dueID {
			total += t.PaidAmount
		}
	}
	return total, nil
}

func (r *fakeTransactionRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, t := range r.txns {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepo) CountByDue(_ context.Context, dueID uint) (int64, error) {
	var count int64
	for _, t := range r.txns {
		if t.DueID == dueID {
			count++
		}
	}
	return count, nil
}
