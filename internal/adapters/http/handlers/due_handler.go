package handlers

import (
	"hima-kasku/internal/core/services"
	"hima-kasku/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DueHandler handles due catalog endpoints
type DueHandler struct {
	dueService     *services.DueService
	paymentService *services.PaymentService
}

// NewDueHandler creates a new due handler
func NewDueHandler(dueService *services.DueService, paymentService *services.PaymentService) *DueHandler {
	return &DueHandler{
		dueService:     dueService,
		paymentService: paymentService,
	}
}

// CreateDueRequest represents create due request body
type CreateDueRequest struct {
	Title          string `json:"title" validate:"required,max=150"`
	RequiredAmount int64  `json:"required_amount" validate:"required,gt=0"`
	Description    string `json:"description" validate:"max=255"`
}

// UpdateDueRequest represents update due request body
type UpdateDueRequest struct {
	Title          *string `json:"title" validate:"omitempty,max=150"`
	RequiredAmount *int64  `json:"required_amount" validate:"omitempty,gt=0"`
	Description    *string `json:"description" validate:"omitempty,max=255"`
}

// Create handles due creation
// @Summary Create due
// @Description Register a new due in the catalog. Titles are unique.
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDueRequest true "Due data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dues [post]
func (h *DueHandler) Create(c *fiber.Ctx) error {
	var req CreateDueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, "Invalid due data: "+err.Error())
	}

	due, err := h.dueService.CreateDue(c.Context(), services.CreateDueInput{
		Title:          req.Title,
		RequiredAmount: req.RequiredAmount,
		Description:    req.Description,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Due created successfully", due)
}

// List handles due catalog listing
// @Summary List dues
// @Description List the full due catalog
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dues [get]
func (h *DueHandler) List(c *fiber.Ctx) error {
	dues, err := h.dueService.ListDues(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Dues retrieved successfully", fiber.Map{
		"dues": dues,
	})
}

// Get handles single due retrieval
// @Summary Get due
// @Description Get one due by ID
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Due ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dues/{id} [get]
func (h *DueHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid due ID")
	}

	due, err := h.dueService.GetDue(c.Context(), uint(id))
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Due retrieved successfully", due)
}

// Update handles due updates
// @Summary Update due
// @Description Patch a due's title, required amount or description. A changed amount reprojects every status immediately.
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Due ID"
// @Param body body UpdateDueRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dues/{id} [put]
func (h *DueHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid due ID")
	}

	var req UpdateDueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, "Invalid due data: "+err.Error())
	}

	due, err := h.dueService.UpdateDue(c.Context(), uint(id), services.UpdateDueInput{
		Title:          req.Title,
		RequiredAmount: req.RequiredAmount,
		Description:    req.Description,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Due updated successfully", due)
}

// Delete handles due deletion
// @Summary Delete due
// @Description Delete a due. Fails with 409 when payments exist unless cascade=true, which removes the due and its payments atomically.
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Due ID"
// @Param cascade query bool false "Also delete the due's payments"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dues/{id} [delete]
func (h *DueHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid due ID")
	}

	cascade := c.QueryBool("cascade", false)

	if err := h.dueService.DeleteDue(c.Context(), uint(id), cascade); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Due deleted successfully", nil)
}

// Transactions lists payments recorded against one due
// @Summary List due payments
// @Description List all payments recorded against one due, newest first
// @Tags Dues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Due ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dues/{id}/transactions [get]
func (h *DueHandler) Transactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid due ID")
	}

	txns, err := h.paymentService.ListByDue(c.Context(), uint(id))
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": txns,
	})
}
