package vault

import (
	"testing"

	"assetrail-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedgerTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CustodyAccount{}))
	return db
}

func TestMove_DebitsAndCredits(t *testing.T) {
	db := setupLedgerTest(t)
	require.NoError(t, Fund(db, "alice", 1_000))

	l := &Ledger{}
	require.NoError(t, l.Move(db, "alice", "bob", 300))

	alice, err := BalanceOf(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(700), alice)

	bob, err := BalanceOf(db, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), bob)
}

func TestMove_MissingSource(t *testing.T) {
	db := setupLedgerTest(t)

	l := &Ledger{}
	err := l.Move(db, "ghost", "bob", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestMove_Overdraw(t *testing.T) {
	db := setupLedgerTest(t)
	require.NoError(t, Fund(db, "alice", 100))

	l := &Ledger{}
	err := l.Move(db, "alice", "bob", 101)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestFund_Accumulates(t *testing.T) {
	db := setupLedgerTest(t)
	require.NoError(t, Fund(db, "alice", 100))
	require.NoError(t, Fund(db, "alice", 50))

	balance, err := BalanceOf(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(150), balance)
}

func TestBalanceOf_UnknownAddress(t *testing.T) {
	db := setupLedgerTest(t)

	balance, err := BalanceOf(db, "nobody")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}
