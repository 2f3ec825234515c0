package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StakePosition is one depositor's principal and accrual state within one
// treasury; at most one row per (treasury, staker). Positions are never
// deleted — a fully withdrawn position stays addressable and a later deposit
// reactivates it with a fresh lockup.
//
// StakedAt is the accrual clock origin and is reset by every claim; UnlockAt
// is fixed when the position is (re)opened and is NOT extended by top-up
// deposits or claims.
type StakePosition struct {
	PositionID     uuid.UUID `gorm:"column:position_id;type:uuid;primaryKey" json:"position_id"`
	TreasuryID     uuid.UUID `gorm:"column:treasury_id;type:uuid;not null;uniqueIndex:idx_treasury_staker" json:"treasury_id"`
	StakerAddress  string    `gorm:"column:staker_address;not null;uniqueIndex:idx_treasury_staker" json:"staker_address"`
	Principal      uint64    `gorm:"column:principal;not null;default:0" json:"principal"`
	StakedAt       int64     `gorm:"column:staked_at;not null" json:"staked_at"`
	UnlockAt       int64     `gorm:"column:unlock_at;not null" json:"unlock_at"`
	RewardsClaimed uint64    `gorm:"column:rewards_claimed;not null;default:0" json:"rewards_claimed"`
	CreatedAt      time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (StakePosition) TableName() string {
	return "StakePositions"
}

func (p *StakePosition) BeforeCreate(tx *gorm.DB) error {
	if p.PositionID == uuid.Nil {
		p.PositionID = uuid.New()
	}
	return nil
}
