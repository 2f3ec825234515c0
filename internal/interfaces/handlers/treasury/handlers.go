package treasury

import (
	treasurysvc "assetrail-backend/internal/application/treasury"
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/middleware"
	"assetrail-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *treasurysvc.Service
}

// CreateTreasury POST /api/v1/treasuries/create-treasury
func (h *Handlers) CreateTreasury(c *fiber.Ctx) error {
	var body struct {
		Name              string `json:"name"`
		BaseAnnualRateBps uint64 `json:"base_annual_rate_bps"`
		MinimumStake      uint64 `json:"minimum_stake"`
		LockupSeconds     int64  `json:"lockup_seconds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.Name == "" || body.MinimumStake == 0 {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	actor := middleware.GetActorAddress(c)
	if actor == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	t, err := h.Service.Create(c.Context(), actor, treasurysvc.CreateInput{
		Name:              body.Name,
		BaseAnnualRateBps: body.BaseAnnualRateBps,
		MinimumStake:      body.MinimumStake,
		LockupSeconds:     body.LockupSeconds,
	})
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.SuccessCreated(c, "Treasury created", fiber.Map{"treasury": t}, nil)
}

// SetActive PATCH /api/v1/treasuries/set-active
func (h *Handlers) SetActive(c *fiber.Ctx) error {
	var body struct {
		TreasuryID string `json:"treasury_id"`
		Active     *bool  `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.TreasuryID == "" || body.Active == nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	treasuryID, err := uuid.Parse(body.TreasuryID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	actor := middleware.GetActorAddress(c)
	if actor == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	t, err := h.Service.SetActive(c.Context(), treasuryID, actor, *body.Active)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Treasury status updated", fiber.Map{"treasury": t}, nil)
}

// AddAsset POST /api/v1/treasuries/add-asset
func (h *Handlers) AddAsset(c *fiber.Ctx) error {
	var body struct {
		TreasuryID     string `json:"treasury_id"`
		AssetType      string `json:"asset_type"`
		Name           string `json:"name"`
		Value          uint64 `json:"value"`
		AnnualYieldBps uint64 `json:"annual_yield_bps"`
		MetadataURI    string `json:"metadata_uri"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.TreasuryID == "" || body.Name == "" || body.AssetType == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	treasuryID, err := uuid.Parse(body.TreasuryID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	actor := middleware.GetActorAddress(c)
	if actor == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}

	asset, err := h.Service.AddAsset(c.Context(), treasuryID, actor, treasurysvc.AddAssetInput{
		AssetType:      domain.AssetType(body.AssetType),
		Name:           body.Name,
		Value:          body.Value,
		AnnualYieldBps: body.AnnualYieldBps,
		MetadataURI:    body.MetadataURI,
	})
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.SuccessCreated(c, "Asset added", fiber.Map{"asset": asset}, nil)
}

// GetMyTreasuries GET /api/v1/treasuries/get-my-treasuries
func (h *Handlers) GetMyTreasuries(c *fiber.Ctx) error {
	actor := middleware.GetActorAddress(c)
	if actor == "" {
		return response.Error(c, "User has no ledger address", fiber.StatusForbidden, nil)
	}
	treasuries, err := h.Service.ListByAuthority(c.Context(), actor)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Treasuries retrieved", fiber.Map{"treasuries": treasuries}, nil)
}

// GetTreasury GET /api/v1/treasuries/get-treasury/:treasury_id
func (h *Handlers) GetTreasury(c *fiber.Ctx) error {
	treasuryID, err := uuid.Parse(c.Params("treasury_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.GetTreasury(c.Context(), treasuryID)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Treasury retrieved", fiber.Map{"treasury": t}, nil)
}

// GetAssets GET /api/v1/treasuries/get-assets/:treasury_id
func (h *Handlers) GetAssets(c *fiber.Ctx) error {
	treasuryID, err := uuid.Parse(c.Params("treasury_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	assets, err := h.Service.ListAssets(c.Context(), treasuryID)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Assets retrieved", fiber.Map{"assets": assets}, nil)
}

// GetTotalApy GET /api/v1/treasuries/get-total-apy/:treasury_id
func (h *Handlers) GetTotalApy(c *fiber.Ctx) error {
	treasuryID, err := uuid.Parse(c.Params("treasury_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	apy, err := h.Service.GetTotalApy(c.Context(), treasuryID)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Total APY estimated", fiber.Map{"total_apy_bps": apy}, nil)
}
