package services

import (
	"context"
	"errors"
	"testing"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/core/domain"
)

func newDueFixture() (*DueService, *fakeDueRepo, *fakeTransactionRepo) {
	dueRepo := newFakeDueRepo()
	txRepo := newFakeTransactionRepo()
	return NewDueService(dueRepo, txRepo), dueRepo, txRepo
}

func TestCreateDue(t *testing.T) {
	svc, _, _ := newDueFixture()

	due, err := svc.CreateDue(context.Background(), CreateDueInput{
		Title:          "PDH 2025",
		RequiredAmount: 100000,
	})
	if err != nil {
		t.Fatalf("CreateDue: %v", err)
	}
	if due.Title != "PDH 2025" || due.RequiredAmount != 100000 {
		t.Errorf("got %q %d, want PDH 2025 100000", due.Title, due.RequiredAmount)
	}
}

func TestCreateDueRejectsDuplicateTitle(t *testing.T) {
	svc, _, _ := newDueFixture()
	ctx := context.Background()

	if _, err := svc.CreateDue(ctx, CreateDueInput{Title: "PDH 2025", RequiredAmount: 100000}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateDue(ctx, CreateDueInput{Title: "PDH 2025", RequiredAmount: 50000})

	var dupErr *domain.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("err = %v, want DuplicateError", err)
	}
	if dupErr.Entity != "due" || dupErr.Value != "PDH 2025" {
		t.Errorf("got %+v, want entity due value PDH 2025", dupErr)
	}
}

func TestCreateDueValidation(t *testing.T) {
	svc, _, _ := newDueFixture()

	tests := []struct {
		name  string
		input CreateDueInput
	}{
		{"empty title", CreateDueInput{Title: "", RequiredAmount: 1000}},
		{"whitespace title", CreateDueInput{Title: "   ", RequiredAmount: 1000}},
		{"zero amount", CreateDueInput{Title: "Makrab", RequiredAmount: 0}},
		{"negative amount", CreateDueInput{Title: "Makrab", RequiredAmount: -500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDue(context.Background(), tt.input)
			wantValidationError(t, err)
		})
	}
}

func TestUpdateDueAmountIsCurrentTruth(t *testing.T) {
	svc, dueRepo, _ := newDueFixture()
	due := dueRepo.add(&models.Due{Title: "PDH 2025", RequiredAmount: 100000})

	newAmount := int64(150000)
	updated, err := svc.UpdateDue(context.Background(), due.ID, UpdateDueInput{RequiredAmount: &newAmount})
	if err != nil {
		t.Fatalf("UpdateDue: %v", err)
	}
	if updated.RequiredAmount != 150000 {
		t.Errorf("RequiredAmount = %d, want 150000", updated.RequiredAmount)
	}
	if updated.Title != "PDH 2025" {
		t.Errorf("Title changed unexpectedly to %q", updated.Title)
	}
}

func TestUpdateDueUnknownID(t *testing.T) {
	svc, _, _ := newDueFixture()

	title := "Makrab"
	_, err := svc.UpdateDue(context.Background(), 42, UpdateDueInput{Title: &title})
	if !errors.Is(err, domain.ErrDueNotFound) {
		t.Errorf("err = %v, want ErrDueNotFound", err)
	}
}

func TestDeleteDueConflictAndCascade(t *testing.T) {
	svc, dueRepo, txRepo := newDueFixture()
	due := dueRepo.add(&models.Due{Title: "PDH 2025", RequiredAmount: 100000})
	txRepo.add(&models.Transaction{UserID: 1, DueID: due.ID, PaidAmount: 40000})
	txRepo.add(&models.Transaction{UserID: 2, DueID: due.ID, PaidAmount: 60000})

	ctx := context.Background()

	// Without cascade the delete is blocked and reports the dependents
	err := svc.DeleteDue(ctx, due.ID, false)
	var conflictErr *domain.ReferentialConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want ReferentialConflictError", err)
	}
	if conflictErr.Transactions != 2 {
		t.Errorf("Transactions = %d, want 2", conflictErr.Transactions)
	}
	if _, err := dueRepo.GetByID(ctx, due.ID); err != nil {
		t.Error("a blocked delete must leave the due in place")
	}

	// With cascade the delete goes through
	if err := svc.DeleteDue(ctx, due.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if _, err := dueRepo.GetByID(ctx, due.ID); err == nil {
		t.Error("cascade delete must remove the due")
	}
}

func TestDeleteDueFreesTitle(t *testing.T) {
	svc, dueRepo, _ := newDueFixture()
	ctx := context.Background()
	due := dueRepo.add(&models.Due{Title: "PDH 2025", RequiredAmount: 100000})

	if err := svc.DeleteDue(ctx, due.ID, false); err != nil {
		t.Fatalf("DeleteDue: %v", err)
	}

	// A deleted due releases its title; re-creating it is not a duplicate
	recreated, err := svc.CreateDue(ctx, CreateDueInput{Title: "PDH 2025", RequiredAmount: 75000})
	if err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
	if recreated.Title != "PDH 2025" {
		t.Errorf("Title = %q, want PDH 2025", recreated.Title)
	}
	dues, err := svc.ListDues(ctx)
	if err != nil {
		t.Fatalf("ListDues: %v", err)
	}
	if len(dues) != 1 {
		t.Errorf("catalog has %d entries, want exactly 1", len(dues))
	}
}

func TestDeleteDueWithoutPayments(t *testing.T) {
	svc, dueRepo, _ := newDueFixture()
	due := dueRepo.add(&models.Due{Title: "PDH 2025", RequiredAmount: 100000})

	if err := svc.DeleteDue(context.Background(), due.ID, false); err != nil {
		t.Fatalf("DeleteDue: %v", err)
	}
	if _, err := dueRepo.GetByID(context.Background(), due.ID); err == nil {
		t.Error("due should be gone")
	}
}
