package handlers

import (
	"hima-kasku/internal/core/services"
	"hima-kasku/internal/pkg/pagination"
	"hima-kasku/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles member roster endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents create user request body
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN STUDENT"`
	Password string `json:"password"`
}

// UpdateUserRequest represents update user request body
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Password *string `json:"password"`
}

// Create handles member creation
// @Summary Create member
// @Description Register a new member. Admins require a password; students must not have one.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, "Invalid member data: "+err.Error())
	}

	user, err := h.userService.CreateUser(c.Context(), services.CreateUserInput{
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Member created successfully", user)
}

// List handles roster listing with role filter and name search
// @Summary List members
// @Description List the roster with optional role filter, name search and pagination
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (ADMIN or STUDENT)"
// @Param search query string false "Search by name"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	role := c.Query("role")
	search := c.Query("search")

	users, total, err := h.userService.ListUsers(c.Context(), role, search, params.Offset, params.Limit)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"users": users,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get handles single member retrieval
// @Summary Get member
// @Description Get one member by ID
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	user, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Member retrieved successfully", user)
}

// Update handles member updates
// @Summary Update member
// @Description Patch a member's name or password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, "Invalid member data: "+err.Error())
	}

	user, err := h.userService.UpdateUser(c.Context(), uint(id), services.UpdateUserInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Member updated successfully", user)
}

// Delete handles member deletion
// @Summary Delete member
// @Description Delete a member. Fails with 409 when payments exist unless cascade=true, which removes the member and their payments atomically.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param cascade query bool false "Also delete the member's payments"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	cascade := c.QueryBool("cascade", false)

	if err := h.userService.DeleteUser(c.Context(), uint(id), cascade); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Member deleted successfully", nil)
}
