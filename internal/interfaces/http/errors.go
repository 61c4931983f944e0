package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sktraders/tradevat-api/internal/application/dto"
	"github.com/sktraders/tradevat-api/internal/domain"
)

// respondError maps domain sentinels to HTTP status and error codes.
// Unknown errors become 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_BALANCE", Message: err.Error()})
	case errors.Is(err, domain.ErrTotalMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOTAL_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateReference):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrPriorPeriodUnsettled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRIOR_PERIOD_UNSETTLED", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyLocked):
		return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "ALREADY_LOCKED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
