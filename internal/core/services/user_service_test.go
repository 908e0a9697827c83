package services

import (
	"context"
	"errors"
	"testing"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/core/domain"
)

func newUserFixture() (*UserService, *fakeUserRepo, *fakeTransactionRepo) {
	userRepo := newFakeUserRepo()
	txRepo := newFakeTransactionRepo()
	return NewUserService(userRepo, txRepo), userRepo, txRepo
}

func TestCreateUserStudentHasNoPassword(t *testing.T) {
	svc, userRepo, _ := newUserFixture()

	user, err := svc.CreateUser(context.Background(), CreateUserInput{Name: "Budi", Role: "STUDENT"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != "STUDENT" {
		t.Errorf("Role = %q, want STUDENT", user.Role)
	}

	stored, _ := userRepo.GetByID(context.Background(), user.ID)
	if stored.Password != "" {
		t.Error("a student must never have a stored credential")
	}
}

func TestCreateUserStudentWithPasswordRejected(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Budi",
		Role:     "STUDENT",
		Password: "secret123",
	})
	wantValidationError(t, err)
}

func TestCreateUserAdminRequiresPassword(t *testing.T) {
	svc, userRepo, _ := newUserFixture()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, CreateUserInput{Name: "Pengurus", Role: "ADMIN"}); err == nil {
		t.Error("an admin without a password must be rejected")
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Name: "Pengurus", Role: "ADMIN", Password: "short"}); err == nil {
		t.Error("an admin with a short password must be rejected")
	}

	user, err := svc.CreateUser(ctx, CreateUserInput{Name: "Pengurus", Role: "ADMIN", Password: "rahasia-sekali"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	stored, _ := userRepo.GetByID(ctx, user.ID)
	if stored.Password == "" || stored.Password == "rahasia-sekali" {
		t.Error("admin password must be stored hashed")
	}
}

func TestCreateUserDefaultsToStudent(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.CreateUser(context.Background(), CreateUserInput{Name: "Budi"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != "STUDENT" {
		t.Errorf("Role = %q, want STUDENT by default", user.Role)
	}
}

func TestCreateUserRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, CreateUserInput{Name: "Budi"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "Budi"})

	var dupErr *domain.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("err = %v, want DuplicateError", err)
	}
	if dupErr.Entity != "user" || dupErr.Value != "Budi" {
		t.Errorf("got %+v, want entity user value Budi", dupErr)
	}
}

func TestUpdateUserStudentPasswordRejected(t *testing.T) {
	svc, userRepo, _ := newUserFixture()
	budi := userRepo.add(&models.User{Name: "Budi", Role: "STUDENT"})

	pw := "secret-panjang"
	_, err := svc.UpdateUser(context.Background(), budi.ID, UpdateUserInput{Password: &pw})
	wantValidationError(t, err)
}

func TestDeleteUserConflictAndCascade(t *testing.T) {
	svc, userRepo, txRepo := newUserFixture()
	budi := userRepo.add(&models.User{Name: "Budi", Role: "STUDENT"})
	txRepo.add(&models.Transaction{UserID: budi.ID, DueID: 1, PaidAmount: 40000})

	ctx := context.Background()

	err := svc.DeleteUser(ctx, budi.ID, false)
	var conflictErr *domain.ReferentialConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want ReferentialConflictError", err)
	}
	if conflictErr.Entity != "user" || conflictErr.Transactions != 1 {
		t.Errorf("got %+v, want entity user with 1 transaction", conflictErr)
	}

	if err := svc.DeleteUser(ctx, budi.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if _, err := userRepo.GetByID(ctx, budi.ID); err == nil {
		t.Error("cascade delete must remove the user")
	}
}

func TestListUsersFilters(t *testing.T) {
	svc, userRepo, _ := newUserFixture()
	userRepo.add(&models.User{Name: "Budi", Role: "STUDENT"})
	userRepo.add(&models.User{Name: "Budiman", Role: "STUDENT"})
	userRepo.add(&models.User{Name: "Pengurus", Role: "ADMIN"})

	ctx := context.Background()

	students, total, err := svc.ListUsers(ctx, "STUDENT", "", 0, 20)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 2 || len(students) != 2 {
		t.Errorf("got %d students (total %d), want 2", len(students), total)
	}

	matched, total, err := svc.ListUsers(ctx, "", "Budi", 0, 20)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 2 || len(matched) != 2 {
		t.Errorf("search got %d (total %d), want 2", len(matched), total)
	}
}
