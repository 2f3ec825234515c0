package staking

import (
	stakingsvc "assetrail-backend/internal/application/staking"
	"assetrail-backend/internal/interfaces/exporter"
	"assetrail-backend/internal/middleware"
	"assetrail-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *stakingsvc.Service
}

type amountBody struct {
	TreasuryID string `json:"treasury_id"`
	Amount     uint64 `json:"amount"`
}

func parseAmountBody(c *fiber.Ctx) (uuid.UUID, uint64, error) {
	var body amountBody
	if err := c.BodyParser(&body); err != nil {
		return uuid.Nil, 0, response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.TreasuryID == "" || body.Amount == 0 {
		return uuid.Nil, 0, response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	treasuryID, err := uuid.Parse(body.TreasuryID)
	if err != nil {
		return uuid.Nil, 0, response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	return treasuryID, body.Amount, nil
}

// Deposit POST /api/v1/staking/deposit
func (h *Handlers) Deposit(c *fiber.Ctx) error {
	treasuryID, amount, err := parseAmountBody(c)
	if err != nil {
		return err
	}
	staker := middleware.GetActorAddress(c)
	if staker == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	position, err := h.Service.Deposit(c.Context(), treasuryID, staker, amount)
	if err != nil {
		return response.ServiceError(c, err)
	}
	exporter.Inc(exporter.MetricDepositCount)
	return response.Success(c, "Deposit accepted", fiber.Map{"position": position}, nil)
}

// Withdraw POST /api/v1/staking/withdraw
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	treasuryID, amount, err := parseAmountBody(c)
	if err != nil {
		return err
	}
	staker := middleware.GetActorAddress(c)
	if staker == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	position, err := h.Service.Withdraw(c.Context(), treasuryID, staker, amount)
	if err != nil {
		return response.ServiceError(c, err)
	}
	exporter.Inc(exporter.MetricWithdrawCount)
	return response.Success(c, "Withdrawal complete", fiber.Map{"position": position}, nil)
}

// ClaimYield POST /api/v1/staking/claim-yield
func (h *Handlers) ClaimYield(c *fiber.Ctx) error {
	var body struct {
		TreasuryID string `json:"treasury_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.TreasuryID == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	treasuryID, err := uuid.Parse(body.TreasuryID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	staker := middleware.GetActorAddress(c)
	if staker == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	result, err := h.Service.ClaimYield(c.Context(), treasuryID, staker)
	if err != nil {
		return response.ServiceError(c, err)
	}
	exporter.Inc(exporter.MetricClaimCount)
	return response.Success(c, "Yield claimed", fiber.Map{"claim": result}, nil)
}

// GetPosition GET /api/v1/staking/get-position/:treasury_id
func (h *Handlers) GetPosition(c *fiber.Ctx) error {
	treasuryID, err := uuid.Parse(c.Params("treasury_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	staker := middleware.GetActorAddress(c)
	if staker == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	position, err := h.Service.GetPosition(c.Context(), treasuryID, staker)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Position retrieved", fiber.Map{"position": position}, nil)
}
