package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Treasury audit event types, one per successful mutating operation.
const (
	EventTreasuryCreated   = "TREASURY_CREATED"
	EventTreasuryStatusSet = "TREASURY_STATUS_SET"
	EventAssetAdded        = "ASSET_ADDED"
	EventStakeDeposited    = "STAKE_DEPOSITED"
	EventStakeWithdrawn    = "STAKE_WITHDRAWN"
	EventYieldClaimed      = "YIELD_CLAIMED"
	EventYieldDistributed  = "YIELD_DISTRIBUTED"
)

// TreasuryEvent is the audit trail for a treasury; rows are written in the
// same transaction as the operation they record, exactly once per success.
type TreasuryEvent struct {
	EventID      uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	TreasuryID   uuid.UUID      `gorm:"column:treasury_id;type:uuid;not null;index" json:"treasury_id"`
	EventType    string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	ActorAddress string         `gorm:"column:actor_address;not null" json:"actor_address"`
	EventData    datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt    time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (TreasuryEvent) TableName() string {
	return "TreasuryEvents"
}

func (e *TreasuryEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
