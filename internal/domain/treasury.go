package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Treasury is a named pool of staked principal and registered yield-bearing
// assets under one authority. Aggregates are adjusted only through checked
// arithmetic; Version backs the compare-and-retry on aggregate updates.
type Treasury struct {
	TreasuryID       uuid.UUID `gorm:"column:treasury_id;type:uuid;primaryKey" json:"treasury_id"`
	Authority        string    `gorm:"column:authority;not null;uniqueIndex:idx_authority_name" json:"authority"`
	Name             string    `gorm:"column:name;not null;uniqueIndex:idx_authority_name" json:"name"`
	BaseAnnualRateBps uint64   `gorm:"column:base_annual_rate_bps;not null" json:"base_annual_rate_bps"`
	MinimumStake     uint64    `gorm:"column:minimum_stake;not null" json:"minimum_stake"`
	LockupSeconds    int64     `gorm:"column:lockup_seconds;not null" json:"lockup_seconds"`
	TotalPrincipal   uint64    `gorm:"column:total_principal;not null;default:0" json:"total_principal"`
	TotalAssetValue  uint64    `gorm:"column:total_asset_value;not null;default:0" json:"total_asset_value"`
	TotalYieldPaid   uint64    `gorm:"column:total_yield_paid;not null;default:0" json:"total_yield_paid"`
	Active           bool      `gorm:"column:active;not null;default:true" json:"active"`
	Version          uint64    `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt        time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Treasury) TableName() string {
	return "Treasuries"
}

// CustodyAddress is the ledger address holding this treasury's pooled funds.
func (t *Treasury) CustodyAddress() string {
	return "custody:" + t.TreasuryID.String()
}

func (t *Treasury) BeforeCreate(tx *gorm.DB) error {
	if t.TreasuryID == uuid.Nil {
		t.TreasuryID = uuid.New()
	}
	return nil
}
