package treasury

import (
	"context"
	"strings"
	"time"

	"assetrail-backend/internal/application/events"
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/constants"
	"assetrail-backend/internal/pkg/safemath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns treasury lifecycle and the asset registry.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateInput for a new treasury.
type CreateInput struct {
	Name              string
	BaseAnnualRateBps uint64
	MinimumStake      uint64
	LockupSeconds     int64
}

// Create initializes a treasury with zeroed aggregates under the caller's
// authority and records the creation event.
func (s *Service) Create(ctx context.Context, authority string, in CreateInput) (*domain.Treasury, error) {
	if authority == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidParameters
	}
	// A zero minimum would make the below-minimum gate vacuous, and an
	// unbounded lockup could wrap the unlock timestamp.
	if in.MinimumStake == 0 || in.LockupSeconds < 0 || in.LockupSeconds > constants.MaxLockupSeconds {
		return nil, domain.ErrInvalidParameters
	}

	t := domain.Treasury{
		Authority:         authority,
		Name:              strings.TrimSpace(in.Name),
		BaseAnnualRateBps: in.BaseAnnualRateBps,
		MinimumStake:      in.MinimumStake,
		LockupSeconds:     in.LockupSeconds,
		Active:            true,
		CreatedAt:         s.now(),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return events.Record(tx, t.TreasuryID, domain.EventTreasuryCreated, authority, map[string]interface{}{
			"name":      t.Name,
			"authority": t.Authority,
			"timestamp": t.CreatedAt.Unix(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetActive toggles the treasury gate. Authority only; existing positions
// remain readable either way.
func (s *Service) SetActive(ctx context.Context, treasuryID uuid.UUID, caller string, active bool) (*domain.Treasury, error) {
	var t domain.Treasury
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("treasury_id = ?", treasuryID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrTreasuryNotFound
			}
			return err
		}
		if t.Authority != caller {
			return domain.ErrUnauthorized
		}
		t.Active = active
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		return events.Record(tx, t.TreasuryID, domain.EventTreasuryStatusSet, caller, map[string]interface{}{
			"active": active,
		})
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddAssetInput for registering a tokenized asset.
type AddAssetInput struct {
	AssetType      domain.AssetType
	Name           string
	Value          uint64
	AnnualYieldBps uint64
	MetadataURI    string
}

// AddAsset registers an asset and folds its value into the treasury's asset
// valuation in one transaction. The valuation add is checked; overflow aborts
// with no asset created.
func (s *Service) AddAsset(ctx context.Context, treasuryID uuid.UUID, caller string, in AddAssetInput) (*domain.Asset, error) {
	if strings.TrimSpace(in.Name) == "" || !domain.ValidAssetType(in.AssetType) {
		return nil, domain.ErrInvalidParameters
	}

	var asset domain.Asset
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t domain.Treasury
		if err := tx.Where("treasury_id = ?", treasuryID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrTreasuryNotFound
			}
			return err
		}
		if t.Authority != caller {
			return domain.ErrUnauthorized
		}
		if !t.Active {
			return domain.ErrTreasuryInactive
		}

		newValue, err := safemath.Add(t.TotalAssetValue, in.Value)
		if err != nil {
			return err
		}

		asset = domain.Asset{
			TreasuryID:     t.TreasuryID,
			AssetType:      in.AssetType,
			Name:           strings.TrimSpace(in.Name),
			Value:          in.Value,
			AnnualYieldBps: in.AnnualYieldBps,
			MetadataURI:    in.MetadataURI,
			Active:         true,
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Treasury{}).
			Where("treasury_id = ? AND version = ?", t.TreasuryID, t.Version).
			Updates(map[string]interface{}{
				"total_asset_value": newValue,
				"version":           t.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAggregateConflict
		}

		return events.Record(tx, t.TreasuryID, domain.EventAssetAdded, caller, map[string]interface{}{
			"asset_id":   asset.AssetID.String(),
			"asset_type": asset.AssetType,
			"value":      asset.Value,
			"yield_bps":  asset.AnnualYieldBps,
		})
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetTreasury returns one treasury by id.
func (s *Service) GetTreasury(ctx context.Context, treasuryID uuid.UUID) (*domain.Treasury, error) {
	var t domain.Treasury
	if err := s.DB.WithContext(ctx).Where("treasury_id = ?", treasuryID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTreasuryNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByAuthority returns every treasury under one authority, oldest first.
func (s *Service) ListByAuthority(ctx context.Context, authority string) ([]domain.Treasury, error) {
	var treasuries []domain.Treasury
	if err := s.DB.WithContext(ctx).
		Where("authority = ?", authority).
		Order(`"createdAt" ASC`).
		Find(&treasuries).Error; err != nil {
		return nil, err
	}
	return treasuries, nil
}

// ListAssets returns all assets registered to a treasury, oldest first.
func (s *Service) ListAssets(ctx context.Context, treasuryID uuid.UUID) ([]domain.Asset, error) {
	if _, err := s.GetTreasury(ctx, treasuryID); err != nil {
		return nil, err
	}
	var assets []domain.Asset
	if err := s.DB.WithContext(ctx).
		Where("treasury_id = ?", treasuryID).
		Order(`"createdAt" ASC`).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// GetTotalApy estimates the blended APY: the base rate plus a fixed asset
// boost, not a weighted average over registered assets.
func (s *Service) GetTotalApy(ctx context.Context, treasuryID uuid.UUID) (uint64, error) {
	t, err := s.GetTreasury(ctx, treasuryID)
	if err != nil {
		return 0, err
	}
	return safemath.Add(t.BaseAnnualRateBps, constants.AssetApyBoostBps)
}
