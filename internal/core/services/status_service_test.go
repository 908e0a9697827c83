package services

import (
	"context"
	"testing"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		required int64
		paid     int64
		want     domain.DueState
	}{
		{"no payments", 50000, 0, domain.DueStateUnpaid},
		{"partial payment", 50000, 20000, domain.DueStatePartial},
		{"exact payment", 50000, 50000, domain.DueStatePaid},
		{"one rupiah short", 50000, 49999, domain.DueStatePartial},
		{"paid beyond required", 50000, 60000, domain.DueStatePaid},
		{"minimal partial", 50000, 1, domain.DueStatePartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.required, tt.paid); got != tt.want {
				t.Errorf("Classify(%d, %d) = %v, want %v", tt.required, tt.paid, got, tt.want)
			}
		})
	}
}

func TestProjectPairClampsRemaining(t *testing.T) {
	due := domain.Due{ID: 1, Title: "PDH 2025", RequiredAmount: 50000}

	st := ProjectPair(7, due, 60000)
	if st.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0 when paid exceeds required", st.Remaining)
	}
	if st.State != domain.DueStatePaid {
		t.Errorf("State = %v, want PAID", st.State)
	}
	if st.TotalPaid != 60000 {
		t.Errorf("TotalPaid = %d, want 60000 (actual sum is kept)", st.TotalPaid)
	}
}

func TestProjectAbsenceIsUnpaid(t *testing.T) {
	dues := []domain.Due{{ID: 1, Title: "PDH 2025", RequiredAmount: 50000}}
	students := []domain.User{{ID: 3, Name: "Budi", Role: domain.RoleStudent}}

	// No payment rows at all for Budi
	statuses := Project(dues, students, nil)

	st, ok := statuses[domain.StatusKey{UserID: 3, DueID: 1}]
	if !ok {
		t.Fatal("expected a status for every (student, active due) pair")
	}
	if st.State != domain.DueStateUnpaid {
		t.Errorf("State = %v, want UNPAID when no payment exists", st.State)
	}
	if st.Remaining != 50000 {
		t.Errorf("Remaining = %d, want the full required amount", st.Remaining)
	}
}

func TestProjectSkipsInactiveDuesAndNonStudents(t *testing.T) {
	dues := []domain.Due{
		{ID: 1, Title: "PDH 2025", RequiredAmount: 50000},
		{ID: 2, Title: "Broken", RequiredAmount: 0},
	}
	users := []domain.User{
		{ID: 1, Name: "Budi", Role: domain.RoleStudent},
		{ID: 2, Name: "Pengurus", Role: domain.RoleAdmin},
	}

	statuses := Project(dues, users, nil)

	if len(statuses) != 1 {
		t.Fatalf("expected exactly one (student, active due) pair, got %d", len(statuses))
	}
	if _, ok := statuses[domain.StatusKey{UserID: 1, DueID: 1}]; !ok {
		t.Error("missing status for the one valid pair")
	}
	if _, ok := statuses[domain.StatusKey{UserID: 1, DueID: 2}]; ok {
		t.Error("a due without a payable amount must not produce statuses")
	}
	if _, ok := statuses[domain.StatusKey{UserID: 2, DueID: 1}]; ok {
		t.Error("admins must not be tracked against dues")
	}
}

func TestProjectIgnoresSumsForUnknownPairs(t *testing.T) {
	dues := []domain.Due{{ID: 1, Title: "PDH 2025", RequiredAmount: 50000}}
	students := []domain.User{{ID: 1, Name: "Budi", Role: domain.RoleStudent}}
	sums := []domain.PaymentSum{
		{UserID: 1, DueID: 1, TotalPaid: 20000},
		{UserID: 99, DueID: 1, TotalPaid: 10000}, // deleted user
		{UserID: 1, DueID: 42, TotalPaid: 5000},  // deleted due
	}

	statuses := Project(dues, students, sums)

	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	st := statuses[domain.StatusKey{UserID: 1, DueID: 1}]
	if st.TotalPaid != 20000 || st.State != domain.DueStatePartial {
		t.Errorf("got total %d state %v, want 20000 PARTIAL", st.TotalPaid, st.State)
	}
}

func TestReduceTransactionsMatchesStoreAggregates(t *testing.T) {
	txns := []domain.Transaction{
		{ID: 1, UserID: 1, DueID: 1, PaidAmount: 20000},
		{ID: 2, UserID: 1, DueID: 1, PaidAmount: 10000},
		{ID: 3, UserID: 2, DueID: 1, PaidAmount: 50000},
		{ID: 4, UserID: 1, DueID: 2, PaidAmount: 5000},
	}

	sums := ReduceTransactions(txns)

	want := map[domain.StatusKey]int64{
		{UserID: 1, DueID: 1}: 30000,
		{UserID: 2, DueID: 1}: 50000,
		{UserID: 1, DueID: 2}: 5000,
	}
	if len(sums) != len(want) {
		t.Fatalf("got %d sums, want %d", len(sums), len(want))
	}
	for _, s := range sums {
		if want[domain.StatusKey{UserID: s.UserID, DueID: s.DueID}] != s.TotalPaid {
			t.Errorf("sum for user %d due %d = %d, want %d",
				s.UserID, s.DueID, s.TotalPaid, want[domain.StatusKey{UserID: s.UserID, DueID: s.DueID}])
		}
	}

	// Projecting through reduced transactions matches projecting through
	// store aggregates
	dues := []domain.Due{
		{ID: 1, Title: "PDH 2025", RequiredAmount: 50000},
		{ID: 2, Title: "Makrab", RequiredAmount: 30000},
	}
	students := []domain.User{
		{ID: 1, Name: "Budi", Role: domain.RoleStudent},
		{ID: 2, Name: "Sari", Role: domain.RoleStudent},
	}

	fromTxns := Project(dues, students, sums)
	fromAggregates := Project(dues, students, []domain.PaymentSum{
		{UserID: 1, DueID: 1, TotalPaid: 30000},
		{UserID: 2, DueID: 1, TotalPaid: 50000},
		{UserID: 1, DueID: 2, TotalPaid: 5000},
	})

	if len(fromTxns) != len(fromAggregates) {
		t.Fatalf("projection sizes differ: %d vs %d", len(fromTxns), len(fromAggregates))
	}
	for key, st := range fromAggregates {
		if fromTxns[key] != st {
			t.Errorf("status for %+v differs: %+v vs %+v", key, fromTxns[key], st)
		}
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	dues := []domain.Due{
		{ID: 1, Title: "PDH 2025", RequiredAmount: 50000},
		{ID: 2, Title: "Makrab", RequiredAmount: 30000},
	}
	students := []domain.User{
		{ID: 1, Name: "Budi", Role: domain.RoleStudent},
		{ID: 2, Name: "Sari", Role: domain.RoleStudent},
	}
	sums := []domain.PaymentSum{{UserID: 1, DueID: 1, TotalPaid: 50000}}

	first := Project(dues, students, sums)
	second := Project(dues, students, sums)

	if len(first) != len(second) {
		t.Fatalf("projection sizes differ across runs")
	}
	for key, st := range first {
		if second[key] != st {
			t.Errorf("status for %+v differs across runs", key)
		}
	}
}

func TestProjectUserSnapshotsOnlyThatUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	dueRepo := newFakeDueRepo()
	txRepo := newFakeTransactionRepo()

	budi := userRepo.add(&models.User{Name: "Budi", Role: "STUDENT"})
	userRepo.add(&models.User{Name: "Sari", Role: "STUDENT"})
	due := dueRepo.add(&models.Due{Title: "PDH 2025", RequiredAmount: 50000})
	txRepo.add(&models.Transaction{UserID: budi.ID, DueID: due.ID, PaidAmount: 20000})

	svc := NewStatusService(userRepo, dueRepo, txRepo)

	_, statuses, err := svc.ProjectUser(context.Background(), budi.ID)
	if err != nil {
		t.Fatalf("ProjectUser: %v", err)
	}

	if len(statuses) != 1 {
		t.Fatalf("expected statuses for one user only, got %d entries", len(statuses))
	}
	st := statuses[domain.StatusKey{UserID: budi.ID, DueID: due.ID}]
	if st.State != domain.DueStatePartial || st.Remaining != 30000 {
		t.Errorf("got state %v remaining %d, want PARTIAL 30000", st.State, st.Remaining)
	}
}

func TestProjectUserUnknownUser(t *testing.T) {
	svc := NewStatusService(newFakeUserRepo(), newFakeDueRepo(), newFakeTransactionRepo())

	_, _, err := svc.ProjectUser(context.Background(), 42)
	if err != domain.ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
