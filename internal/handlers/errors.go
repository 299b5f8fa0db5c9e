package handlers

import (
	"errors"

	"lapak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain errors to HTTP status codes so handlers do not
// match on error strings.
func statusForError(err error) int {
	var voucherErr *models.VoucherError
	switch {
	case errors.As(err, &voucherErr):
		if voucherErr.Reason == models.VoucherNotFound {
			return fiber.StatusNotFound
		}
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidTransition):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
