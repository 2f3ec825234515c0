package distributions

import (
	"context"
	"testing"

	"assetrail-backend/internal/application/vault"
	"assetrail-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDistributionsTest(t *testing.T) (*Service, *gorm.DB, *domain.Treasury, *domain.Asset) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Treasury{}, &domain.Asset{}, &domain.TreasuryEvent{},
		&domain.CustodyAccount{},
	))

	treasury := &domain.Treasury{
		Authority:         "authority-addr",
		Name:              "Pool",
		BaseAnnualRateBps: 500,
		MinimumStake:      100,
		Active:            true,
		TotalAssetValue:   1_000_000,
	}
	require.NoError(t, db.Create(treasury).Error)
	asset := &domain.Asset{
		TreasuryID: treasury.TreasuryID,
		AssetType:  domain.AssetMusicIP,
		Name:       "Catalog A",
		Value:      1_000_000,
		Active:     true,
	}
	require.NoError(t, db.Create(asset).Error)

	require.NoError(t, vault.Fund(db, "payer-addr", 100_000))

	return &Service{DB: db, Vault: &vault.Ledger{}}, db, treasury, asset
}

func TestDistribute_IncrementsDistributionsOnly(t *testing.T) {
	svc, db, treasury, asset := setupDistributionsTest(t)

	got, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), got.TotalDistributions)

	// Custody grows, the treasury's book valuation does not.
	custody, err := vault.BalanceOf(db, treasury.CustodyAddress())
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), custody)

	var gotTreasury domain.Treasury
	require.NoError(t, db.First(&gotTreasury, "treasury_id = ?", treasury.TreasuryID).Error)
	assert.Equal(t, uint64(1_000_000), gotTreasury.TotalAssetValue)

	payer, err := vault.BalanceOf(db, "payer-addr")
	require.NoError(t, err)
	assert.Equal(t, uint64(90_000), payer)

	var events []domain.TreasuryEvent
	require.NoError(t, db.Find(&events, "treasury_id = ?", treasury.TreasuryID).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventYieldDistributed, events[0].EventType)
}

func TestDistribute_Accumulates(t *testing.T) {
	svc, _, treasury, asset := setupDistributionsTest(t)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 10_000)
	require.NoError(t, err)
	got, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(15_000), got.TotalDistributions)
}

func TestDistribute_ZeroAmount(t *testing.T) {
	svc, _, treasury, asset := setupDistributionsTest(t)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestDistribute_UnknownAsset(t *testing.T) {
	svc, _, treasury, _ := setupDistributionsTest(t)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, uuid.New(), "payer-addr", 1_000)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDistribute_AssetFromOtherTreasury(t *testing.T) {
	svc, db, _, asset := setupDistributionsTest(t)

	other := &domain.Treasury{
		Authority: "authority-addr", Name: "Other Pool",
		BaseAnnualRateBps: 500, MinimumStake: 100, Active: true,
	}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.Distribute(context.Background(), other.TreasuryID, asset.AssetID, "payer-addr", 1_000)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDistribute_InactiveAsset(t *testing.T) {
	svc, db, treasury, asset := setupDistributionsTest(t)
	require.NoError(t, db.Model(asset).Update("active", false).Error)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 1_000)
	assert.ErrorIs(t, err, domain.ErrAssetInactive)
}

func TestDistribute_InactiveTreasury(t *testing.T) {
	svc, db, treasury, asset := setupDistributionsTest(t)
	require.NoError(t, db.Model(treasury).Update("active", false).Error)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 1_000)
	assert.ErrorIs(t, err, domain.ErrTreasuryInactive)
}

func TestDistribute_InsufficientFunds(t *testing.T) {
	svc, db, treasury, asset := setupDistributionsTest(t)

	_, err := svc.Distribute(context.Background(), treasury.TreasuryID, asset.AssetID, "payer-addr", 1_000_000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Aborted transaction leaves the counter untouched.
	var got domain.Asset
	require.NoError(t, db.First(&got, "asset_id = ?", asset.AssetID).Error)
	assert.Equal(t, uint64(0), got.TotalDistributions)
}
