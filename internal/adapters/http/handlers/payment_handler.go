package handlers

import (
	"hima-kasku/internal/core/services"
	"hima-kasku/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment recording endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents payment entry request body
type RecordPaymentRequest struct {
	UserID     uint   `json:"user_id" validate:"required,gt=0"`
	DueID      uint   `json:"due_id" validate:"required,gt=0"`
	PaidAmount int64  `json:"paid_amount" validate:"required,gt=0"`
	Note       string `json:"note" validate:"max=255"`
}

// Record handles payment entry
// @Summary Record payment
// @Description Record one payment against a due. A payment exceeding the remaining balance is rejected with 422 and nothing is written.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, "Invalid payment data: "+err.Error())
	}

	tx, err := h.paymentService.RecordPayment(c.Context(), services.RecordPaymentInput{
		UserID: req.UserID,
		DueID:  req.DueID,
		Amount: req.PaidAmount,
		Note:   req.Note,
	})
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Payment recorded successfully", tx)
}

// Outstanding lists a student's unsettled dues
// @Summary List outstanding dues
// @Description List the dues a student has not fully settled, with the remaining balance for each
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/outstanding [get]
func (h *PaymentHandler) Outstanding(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	items, err := h.paymentService.Outstanding(c.Context(), uint(id))
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Outstanding dues retrieved successfully", fiber.Map{
		"outstanding": items,
	})
}

// History lists a student's payments
// @Summary List payment history
// @Description List a student's payments, newest first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/transactions [get]
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	txns, err := h.paymentService.History(c.Context(), uint(id))
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": txns,
	})
}
