package vault

import (
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/safemath"

	"gorm.io/gorm"
)

// Mover is the value-transfer primitive between a caller address and a
// treasury's custody. Implementations must apply both sides within the
// supplied transaction so accounting and funds move atomically.
type Mover interface {
	Move(tx *gorm.DB, fromAddress, toAddress string, amount uint64) error
}

// Ledger is the GORM-backed Mover over CustodyAccount rows.
type Ledger struct{}

// Move debits fromAddress and credits toAddress inside tx. The destination
// account is created on first use; the source must exist and cover amount.
func (l *Ledger) Move(tx *gorm.DB, fromAddress, toAddress string, amount uint64) error {
	if err := l.debit(tx, fromAddress, amount); err != nil {
		return err
	}
	return l.credit(tx, toAddress, amount)
}

func (l *Ledger) debit(tx *gorm.DB, address string, amount uint64) error {
	var acct domain.CustodyAccount
	if err := tx.Where("address = ?", address).First(&acct).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrInsufficientFunds
		}
		return err
	}
	newBalance, err := safemath.Sub(acct.Balance, amount)
	if err != nil {
		return domain.ErrInsufficientFunds
	}
	acct.Balance = newBalance
	return tx.Save(&acct).Error
}

func (l *Ledger) credit(tx *gorm.DB, address string, amount uint64) error {
	var acct domain.CustodyAccount
	err := tx.Where("address = ?", address).First(&acct).Error
	if err == gorm.ErrRecordNotFound {
		acct = domain.CustodyAccount{Address: address, Balance: amount}
		return tx.Create(&acct).Error
	}
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add(acct.Balance, amount)
	if err != nil {
		return err
	}
	acct.Balance = newBalance
	return tx.Save(&acct).Error
}

// Fund credits an address outside any treasury operation (ops/test seeding;
// not exposed over HTTP).
func Fund(db *gorm.DB, address string, amount uint64) error {
	return (&Ledger{}).credit(db, address, amount)
}

// BalanceOf returns the current balance for address, zero when the account
// does not exist yet.
func BalanceOf(db *gorm.DB, address string) (uint64, error) {
	var acct domain.CustodyAccount
	if err := db.Where("address = ?", address).First(&acct).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return acct.Balance, nil
}
