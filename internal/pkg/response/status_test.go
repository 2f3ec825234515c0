package response

import (
	"errors"
	"testing"

	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/safemath"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrTreasuryNotFound, fiber.StatusNotFound},
		{domain.ErrNoStakeFound, fiber.StatusNotFound},
		{domain.ErrUnauthorized, fiber.StatusForbidden},
		{domain.ErrTreasuryInactive, fiber.StatusConflict},
		{domain.ErrStillLocked, fiber.StatusConflict},
		{domain.ErrClockRegression, fiber.StatusConflict},
		{domain.ErrAggregateConflict, fiber.StatusConflict},
		{domain.ErrBelowMinimumStake, fiber.StatusBadRequest},
		{domain.ErrInsufficientFunds, fiber.StatusBadRequest},
		{safemath.ErrOverflow, fiber.StatusBadRequest},
		{errors.New("pq: connection refused"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, StatusOf(tc.err), "mapping for %v", tc.err)
	}
}
