package distributions

import (
	distsvc "assetrail-backend/internal/application/distributions"
	"assetrail-backend/internal/interfaces/exporter"
	"assetrail-backend/internal/middleware"
	"assetrail-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *distsvc.Service
}

// DistributeYield POST /api/v1/distributions/distribute-yield
func (h *Handlers) DistributeYield(c *fiber.Ctx) error {
	var body struct {
		TreasuryID string `json:"treasury_id"`
		AssetID    string `json:"asset_id"`
		Amount     uint64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.TreasuryID == "" || body.AssetID == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	treasuryID, err := uuid.Parse(body.TreasuryID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	assetID, err := uuid.Parse(body.AssetID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for asset_id", fiber.StatusBadRequest, nil)
	}
	payer := middleware.GetActorAddress(c)
	if payer == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	asset, err := h.Service.Distribute(c.Context(), treasuryID, assetID, payer, body.Amount)
	if err != nil {
		return response.ServiceError(c, err)
	}
	exporter.Inc(exporter.MetricDistributionCount)
	return response.Success(c, "Yield distributed", fiber.Map{"asset": asset}, nil)
}
