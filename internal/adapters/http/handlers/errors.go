package handlers

import (
	"errors"

	"hima-kasku/internal/core/domain"
	"hima-kasku/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleDomainError maps a domain error to an HTTP response. Typed errors
// carry their payload in the response body so clients can act on it.
func handleDomainError(c *fiber.Ctx, err error) error {
	var (
		validationErr  *domain.ValidationError
		duplicateErr   *domain.DuplicateError
		overpaymentErr *domain.OverpaymentError
		conflictErr    *domain.ReferentialConflictError
		storeErr       *domain.StoreUnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		return response.ErrorKind(c, fiber.StatusBadRequest, string(domain.KindValidation), validationErr.Error(), fiber.Map{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		})

	case errors.As(err, &duplicateErr):
		return response.ErrorKind(c, fiber.StatusConflict, string(domain.KindDuplicate), duplicateErr.Error(), fiber.Map{
			"entity": duplicateErr.Entity,
			"value":  duplicateErr.Value,
		})

	case errors.As(err, &overpaymentErr):
		return response.ErrorKind(c, fiber.StatusUnprocessableEntity, string(domain.KindOverpayment), overpaymentErr.Error(), fiber.Map{
			"attempted": overpaymentErr.Attempted,
			"remaining": overpaymentErr.Remaining,
		})

	case errors.As(err, &conflictErr):
		return response.ErrorKind(c, fiber.StatusConflict, string(domain.KindReferentialConflict), conflictErr.Error(), fiber.Map{
			"entity":       conflictErr.Entity,
			"id":           conflictErr.ID,
			"transactions": conflictErr.Transactions,
		})

	case errors.As(err, &storeErr):
		return response.ServiceUnavailable(c, "Data store is unavailable, try again later")

	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")

	case errors.Is(err, domain.ErrDueNotFound):
		return response.NotFound(c, "Due not found")

	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")

	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
