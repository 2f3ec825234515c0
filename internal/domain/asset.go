package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetType is the closed set of tokenized asset classes a treasury accepts.
type AssetType string

const (
	AssetMusicIP    AssetType = "MusicIP"
	AssetRealEstate AssetType = "RealEstate"
	AssetSports     AssetType = "Sports"
	AssetWine       AssetType = "Wine"
	AssetFilm       AssetType = "Film"
)

// ValidAssetType reports whether t is one of the known asset classes.
func ValidAssetType(t AssetType) bool {
	switch t {
	case AssetMusicIP, AssetRealEstate, AssetSports, AssetWine, AssetFilm:
		return true
	}
	return false
}

// Asset is a tokenized yield-bearing holding registered to one treasury.
// AnnualYieldBps is the asset's own expected rate; it is informational only —
// claims use the pool-wide average rate, not per-asset rates.
type Asset struct {
	AssetID            uuid.UUID `gorm:"column:asset_id;type:uuid;primaryKey" json:"asset_id"`
	TreasuryID         uuid.UUID `gorm:"column:treasury_id;type:uuid;not null;uniqueIndex:idx_treasury_asset_name" json:"treasury_id"`
	AssetType          AssetType `gorm:"column:asset_type;type:varchar(20);not null" json:"asset_type"`
	Name               string    `gorm:"column:name;not null;uniqueIndex:idx_treasury_asset_name" json:"name"`
	Value              uint64    `gorm:"column:value;not null" json:"value"`
	AnnualYieldBps     uint64    `gorm:"column:annual_yield_bps;not null" json:"annual_yield_bps"`
	MetadataURI        string    `gorm:"column:metadata_uri" json:"metadata_uri"`
	TotalDistributions uint64    `gorm:"column:total_distributions;not null;default:0" json:"total_distributions"`
	Active             bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt          time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Asset) TableName() string {
	return "Assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	return nil
}
