package response

import (
	"errors"

	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/safemath"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps service sentinel errors onto HTTP status codes. Anything
// unrecognized is a 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrTreasuryNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrNoStakeFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTreasuryInactive),
		errors.Is(err, domain.ErrAssetInactive),
		errors.Is(err, domain.ErrStillLocked),
		errors.Is(err, domain.ErrClockRegression),
		errors.Is(err, domain.ErrAggregateConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrBelowMinimumStake),
		errors.Is(err, domain.ErrInsufficientStake),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrNoYieldAvailable),
		errors.Is(err, domain.ErrInvalidParameters),
		errors.Is(err, safemath.ErrOverflow),
		errors.Is(err, safemath.ErrDivideByZero):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ServiceError sends the standard error envelope with the mapped status.
// Internal errors are not echoed back to the client.
func ServiceError(c *fiber.Ctx, err error) error {
	code := StatusOf(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal Server Error"
	}
	return Error(c, message, code, nil)
}
