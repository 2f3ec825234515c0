package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustodyAccount is a ledger balance keyed by address. Depositor wallets and
// treasury custody accounts share the same table; the treasury side uses the
// "custody:<treasury-id>" address.
type CustodyAccount struct {
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;primaryKey" json:"account_id"`
	Address   string    `gorm:"column:address;not null;uniqueIndex" json:"address"`
	Balance   uint64    `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (CustodyAccount) TableName() string {
	return "CustodyAccounts"
}

func (a *CustodyAccount) BeforeCreate(tx *gorm.DB) error {
	if a.AccountID == uuid.Nil {
		a.AccountID = uuid.New()
	}
	return nil
}
