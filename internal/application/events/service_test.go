package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"assetrail-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventsTest(t *testing.T) (*Service, *gorm.DB, *domain.Treasury) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Treasury{}, &domain.TreasuryEvent{}))

	treasury := &domain.Treasury{
		Authority: "authority-addr", Name: "Pool",
		BaseAnnualRateBps: 500, MinimumStake: 100, Active: true,
	}
	require.NoError(t, db.Create(treasury).Error)
	return &Service{DB: db}, db, treasury
}

func TestRecord_StoresPayload(t *testing.T) {
	_, db, treasury := setupEventsTest(t)

	err := Record(db, treasury.TreasuryID, domain.EventStakeDeposited, "staker-addr", map[string]interface{}{
		"amount": uint64(1_000),
	})
	require.NoError(t, err)

	var got domain.TreasuryEvent
	require.NoError(t, db.First(&got, "treasury_id = ?", treasury.TreasuryID).Error)
	assert.Equal(t, domain.EventStakeDeposited, got.EventType)
	assert.Equal(t, "staker-addr", got.ActorAddress)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(got.EventData, &payload))
	assert.Equal(t, float64(1_000), payload["amount"])
}

func TestGetTreasuryEvents_OrderedOldestFirst(t *testing.T) {
	svc, db, treasury := setupEventsTest(t)

	first := &domain.TreasuryEvent{
		TreasuryID: treasury.TreasuryID, EventType: domain.EventTreasuryCreated,
		ActorAddress: "authority-addr", CreatedAt: time.Unix(1_700_000_000, 0),
	}
	second := &domain.TreasuryEvent{
		TreasuryID: treasury.TreasuryID, EventType: domain.EventStakeDeposited,
		ActorAddress: "staker-addr", CreatedAt: time.Unix(1_700_000_100, 0),
	}
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(first).Error)

	list, err := svc.GetTreasuryEvents(context.Background(), treasury.TreasuryID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.EventTreasuryCreated, list[0].EventType)
	assert.Equal(t, domain.EventStakeDeposited, list[1].EventType)
}

func TestGetTreasuryEvents_UnknownTreasury(t *testing.T) {
	svc, _, _ := setupEventsTest(t)

	_, err := svc.GetTreasuryEvents(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTreasuryNotFound)
}
