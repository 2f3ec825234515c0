package staking

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	stakingsvc "assetrail-backend/internal/application/staking"
	"assetrail-backend/internal/application/vault"
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/interfaces/exporter"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStakingHandlers(t *testing.T) (*Handlers, *gorm.DB, *domain.Treasury) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Treasury{}, &domain.StakePosition{},
		&domain.TreasuryEvent{}, &domain.CustodyAccount{},
	))
	treasury := &domain.Treasury{
		Authority:         "authority-addr",
		Name:              "Pool",
		BaseAnnualRateBps: 500,
		MinimumStake:      100,
		LockupSeconds:     0,
		Active:            true,
	}
	require.NoError(t, db.Create(treasury).Error)
	require.NoError(t, vault.Fund(db, "staker-addr", 1_000_000))

	h := &Handlers{Service: &stakingsvc.Service{DB: db, Vault: &vault.Ledger{}}}
	return h, db, treasury
}

func appWithUser(address string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"address": address,
		})
		return c.Next()
	})
	return app
}

func TestDeposit_MissingFields(t *testing.T) {
	h, _, _ := setupStakingHandlers(t)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)

	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDeposit_InvalidUUID(t *testing.T) {
	h, _, _ := setupStakingHandlers(t)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": "not-a-uuid", "amount": 1000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDeposit_NoAddress(t *testing.T) {
	h, _, treasury := setupStakingHandlers(t)
	app := appWithUser("")
	app.Post("/deposit", h.Deposit)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 1000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestDeposit_Success(t *testing.T) {
	h, _, treasury := setupStakingHandlers(t)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)

	exporter.Init()
	depositsBefore := testutil.ToFloat64(exporter.GetCounter(exporter.MetricDepositCount))

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 1000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	position, _ := data["position"].(map[string]interface{})
	require.NotNil(t, position)
	assert.Equal(t, float64(1000), position["principal"])

	depositsAfter := testutil.ToFloat64(exporter.GetCounter(exporter.MetricDepositCount))
	assert.Equal(t, depositsBefore+1, depositsAfter)
}

func TestDeposit_BelowMinimumMapsTo400(t *testing.T) {
	h, _, treasury := setupStakingHandlers(t)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 50,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDeposit_InactiveTreasuryMapsTo409(t *testing.T) {
	h, db, treasury := setupStakingHandlers(t)
	require.NoError(t, db.Model(treasury).Update("active", false).Error)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 1000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestWithdraw_StillLockedMapsTo409(t *testing.T) {
	h, db, treasury := setupStakingHandlers(t)
	require.NoError(t, db.Model(treasury).Update("lockup_seconds", 3600).Error)
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)
	app.Post("/withdraw", h.Withdraw)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 1000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("POST", "/withdraw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestClaimYield_Success(t *testing.T) {
	h, _, treasury := setupStakingHandlers(t)
	clockNow := time.Unix(1_700_000_000, 0)
	h.Service.Now = func() time.Time { return clockNow }
	app := appWithUser("staker-addr")
	app.Post("/deposit", h.Deposit)
	app.Post("/claim-yield", h.ClaimYield)

	body, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(), "amount": 1_000_000,
	})
	req := httptest.NewRequest("POST", "/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	clockNow = clockNow.Add(365 * 24 * time.Hour)
	claimBody, _ := json.Marshal(map[string]interface{}{
		"treasury_id": treasury.TreasuryID.String(),
	})
	req = httptest.NewRequest("POST", "/claim-yield", bytes.NewReader(claimBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	data, _ := out["data"].(map[string]interface{})
	claim, _ := data["claim"].(map[string]interface{})
	require.NotNil(t, claim)
	assert.Equal(t, float64(50_000), claim["total_yield"])
}

func TestGetPosition_NotFoundMapsTo404(t *testing.T) {
	h, _, treasury := setupStakingHandlers(t)
	app := appWithUser("staker-addr")
	app.Get("/get-position/:treasury_id", h.GetPosition)

	req := httptest.NewRequest("GET", "/get-position/"+treasury.TreasuryID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
