package events

import (
	"context"
	"encoding/json"

	"assetrail-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service reads the treasury audit feed.
type Service struct {
	DB *gorm.DB
}

// Record appends one audit event inside the caller's transaction. Mutating
// operations call this exactly once, after their state changes succeed, so an
// aborted transaction never leaves a stray event behind.
func Record(tx *gorm.DB, treasuryID uuid.UUID, eventType, actor string, payload map[string]interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&domain.TreasuryEvent{
		TreasuryID:   treasuryID,
		EventType:    eventType,
		ActorAddress: actor,
		EventData:    datatypes.JSON(b),
	}).Error
}

// GetTreasuryEvents returns a treasury's audit trail, oldest first.
func (s *Service) GetTreasuryEvents(ctx context.Context, treasuryID uuid.UUID) ([]domain.TreasuryEvent, error) {
	if treasuryID == uuid.Nil {
		return nil, domain.ErrInvalidParameters
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Treasury{}).
		Where("treasury_id = ?", treasuryID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrTreasuryNotFound
	}

	var events []domain.TreasuryEvent
	if err := s.DB.WithContext(ctx).
		Where("treasury_id = ?", treasuryID).
		Order(`"createdAt" ASC`).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
