package distributions

import (
	"context"
	"errors"

	"assetrail-backend/internal/application/events"
	"assetrail-backend/internal/application/vault"
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/safemath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service accepts external yield payments tagged to a registered asset and
// folds them into treasury custody.
type Service struct {
	DB    *gorm.DB
	Vault vault.Mover
}

// Distribute moves amount from the payer into treasury custody and adds it to
// the asset's cumulative distributions. Custody grows but the treasury's
// asset valuation does not: distributions fund future claims, valuation
// tracks asset book value.
func (s *Service) Distribute(ctx context.Context, treasuryID, assetID uuid.UUID, payer string, amount uint64) (*domain.Asset, error) {
	if amount == 0 {
		return nil, domain.ErrInvalidParameters
	}

	var asset domain.Asset
	run := func(tx *gorm.DB) error {
		var t domain.Treasury
		if err := tx.Where("treasury_id = ?", treasuryID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrTreasuryNotFound
			}
			return err
		}
		if !t.Active {
			return domain.ErrTreasuryInactive
		}

		asset = domain.Asset{}
		if err := tx.Where("asset_id = ? AND treasury_id = ?", assetID, treasuryID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrAssetNotFound
			}
			return err
		}
		if !asset.Active {
			return domain.ErrAssetInactive
		}

		newDistributions, err := safemath.Add(asset.TotalDistributions, amount)
		if err != nil {
			return err
		}

		if err := s.Vault.Move(tx, payer, t.CustodyAddress(), amount); err != nil {
			return err
		}

		// Guard on the previous value so concurrent distributions to the same
		// asset cannot drop an increment.
		res := tx.Model(&domain.Asset{}).
			Where("asset_id = ? AND total_distributions = ?", asset.AssetID, asset.TotalDistributions).
			Update("total_distributions", newDistributions)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAggregateConflict
		}
		asset.TotalDistributions = newDistributions

		return events.Record(tx, treasuryID, domain.EventYieldDistributed, payer, map[string]interface{}{
			"asset_id":            asset.AssetID.String(),
			"amount":              amount,
			"total_distributions": asset.TotalDistributions,
		})
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = s.DB.WithContext(ctx).Transaction(run)
		if !errors.Is(err, domain.ErrAggregateConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
