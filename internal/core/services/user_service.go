package services

import (
	"context"
	"strings"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/adapters/persistence/repositories"
	"hima-kasku/internal/core/domain"
	"hima-kasku/internal/pkg/password"
)

// UserService manages the member roster
type UserService struct {
	userRepo repositories.UserRepository
	txRepo   repositories.TransactionRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, txRepo repositories.TransactionRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		txRepo:   txRepo,
	}
}

// CreateUserInput carries a new roster entry. Password is required for
// admins and forbidden for students, who authenticate by name only.
type CreateUserInput struct {
	Name     string
	Role     string
	Password string
}

// CreateUser registers a new member. Names are unique across the roster.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.UserResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleStudent)
	}
	if role != string(domain.RoleAdmin) && role != string(domain.RoleStudent) {
		return nil, &domain.ValidationError{Field: "role", Reason: "must be ADMIN or STUDENT"}
	}

	var hashed string
	switch role {
	case string(domain.RoleAdmin):
		if !password.Validate(input.Password) {
			return nil, &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
		}
		h, err := password.Hash(input.Password)
		if err != nil {
			return nil, storeErr("hash password", err)
		}
		hashed = h
	case string(domain.RoleStudent):
		if input.Password != "" {
			return nil, &domain.ValidationError{Field: "password", Reason: "students authenticate by name and must not have a password"}
		}
	}

	exists, err := s.userRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, storeErr("check user name", err)
	}
	if exists {
		return nil, &domain.DuplicateError{Entity: "user", Value: name}
	}

	user := &models.User{
		Name:     name,
		Role:     role,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeErr("create user", err)
	}
	return user.ToResponse(), nil
}

// UpdateUserInput carries partial roster updates; nil fields are left unchanged
type UpdateUserInput struct {
	Name     *string
	Password *string
}

// UpdateUser patches a roster entry. Role changes are not supported; a
// member keeps the role they were created with.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if name != user.Name {
			exists, err := s.userRepo.ExistsByName(ctx, name)
			if err != nil {
				return nil, storeErr("check user name", err)
			}
			if exists {
				return nil, &domain.DuplicateError{Entity: "user", Value: name}
			}
			user.Name = name
		}
	}

	if input.Password != nil {
		if user.Role != string(domain.RoleAdmin) {
			return nil, &domain.ValidationError{Field: "password", Reason: "students authenticate by name and must not have a password"}
		}
		if !password.Validate(*input.Password) {
			return nil, &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
		}
		h, err := password.Hash(*input.Password)
		if err != nil {
			return nil, storeErr("hash password", err)
		}
		user.Password = h
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeErr("update user", err)
	}
	return user.ToResponse(), nil
}

// DeleteUser removes a roster entry. A member with recorded payments is
// protected: deletion fails with a conflict unless cascade is set, in which
// case the member and all of their transactions are removed atomically.
func (s *UserService) DeleteUser(ctx context.Context, id uint, cascade bool) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return storeErr("get user", err)
	}

	count, err := s.txRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return storeErr("count transactions", err)
	}

	if count > 0 {
		if !cascade {
			return &domain.ReferentialConflictError{Entity: "user", ID: user.ID, Transactions: count}
		}
		if err := s.userRepo.DeleteCascade(ctx, user.ID); err != nil {
			return storeErr("delete user", err)
		}
		return nil
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return storeErr("delete user", err)
	}
	return nil
}

// GetUser retrieves one roster entry
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	return user.ToResponse(), nil
}

// ListUsers lists the roster with optional role filter and name search
func (s *UserService) ListUsers(ctx context.Context, role, search string, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, search, offset, limit)
	if err != nil {
		return nil, 0, storeErr("list users", err)
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}
