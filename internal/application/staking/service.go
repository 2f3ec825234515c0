package staking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assetrail-backend/internal/application/events"
	"assetrail-backend/internal/application/vault"
	"assetrail-backend/internal/domain"
	"assetrail-backend/internal/pkg/constants"
	"assetrail-backend/internal/pkg/safemath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// aggregateRetries bounds the compare-and-retry loop on treasury aggregates.
const aggregateRetries = 3

// Service implements deposits, withdrawals and yield claims over stake
// positions. Every operation runs as one transaction: position row, treasury
// aggregates, custody transfer and audit event commit together or not at all.
type Service struct {
	DB    *gorm.DB
	Vault vault.Mover
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ClaimResult reports the two yield sources of a claim separately.
type ClaimResult struct {
	BaseYield  uint64 `json:"base_yield"`
	AssetYield uint64 `json:"asset_yield"`
	TotalYield uint64 `json:"total_yield"`
}

// Deposit moves amount from the depositor into treasury custody and adds it
// to their position. A first (or fully withdrawn) position gets fresh accrual
// and unlock clocks; a top-up leaves both clocks untouched.
func (s *Service) Deposit(ctx context.Context, treasuryID uuid.UUID, depositor string, amount uint64) (*domain.StakePosition, error) {
	var position domain.StakePosition

	err := s.withAggregateRetry(ctx, func(tx *gorm.DB) error {
		t, err := lockTreasury(tx, treasuryID)
		if err != nil {
			return err
		}
		if !t.Active {
			return domain.ErrTreasuryInactive
		}
		if amount < t.MinimumStake {
			return domain.ErrBelowMinimumStake
		}

		newTotal, err := safemath.Add(t.TotalPrincipal, amount)
		if err != nil {
			return err
		}

		nowUnix := s.now().Unix()
		unlockAt, err := unlockTime(nowUnix, t.LockupSeconds)
		if err != nil {
			return err
		}
		position = domain.StakePosition{}
		err = tx.Where("treasury_id = ? AND staker_address = ?", treasuryID, depositor).First(&position).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			position = domain.StakePosition{
				TreasuryID:    treasuryID,
				StakerAddress: depositor,
				Principal:     amount,
				StakedAt:      nowUnix,
				UnlockAt:      unlockAt,
			}
			if err := tx.Create(&position).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case position.Principal == 0:
			// Reactivating a drained position restarts both clocks.
			position.Principal = amount
			position.StakedAt = nowUnix
			position.UnlockAt = unlockAt
			if err := tx.Save(&position).Error; err != nil {
				return err
			}
		default:
			newPrincipal, err := safemath.Add(position.Principal, amount)
			if err != nil {
				return err
			}
			position.Principal = newPrincipal
			if err := tx.Save(&position).Error; err != nil {
				return err
			}
		}

		if err := s.Vault.Move(tx, depositor, t.CustodyAddress(), amount); err != nil {
			return err
		}
		if err := applyAggregates(tx, t, map[string]interface{}{
			"total_principal": newTotal,
		}); err != nil {
			return err
		}
		return events.Record(tx, treasuryID, domain.EventStakeDeposited, depositor, map[string]interface{}{
			"amount":       amount,
			"total_staked": position.Principal,
		})
	})
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// Withdraw returns amount of unlocked principal to the depositor. It is
// allowed on suspended treasuries; suspension must not trap funds.
func (s *Service) Withdraw(ctx context.Context, treasuryID uuid.UUID, depositor string, amount uint64) (*domain.StakePosition, error) {
	var position domain.StakePosition

	err := s.withAggregateRetry(ctx, func(tx *gorm.DB) error {
		t, err := lockTreasury(tx, treasuryID)
		if err != nil {
			return err
		}
		position = domain.StakePosition{}
		if err := tx.Where("treasury_id = ? AND staker_address = ?", treasuryID, depositor).First(&position).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNoStakeFound
			}
			return err
		}
		if position.Principal < amount {
			return domain.ErrInsufficientStake
		}
		if s.now().Unix() < position.UnlockAt {
			return domain.ErrStillLocked
		}

		// Both guarded above; failure here means the stored aggregates are
		// already inconsistent, so surface it as an internal fault.
		newPrincipal, err := safemath.Sub(position.Principal, amount)
		if err != nil {
			return fmt.Errorf("position principal underflow after balance guard: %w", err)
		}
		newTotal, err := safemath.Sub(t.TotalPrincipal, amount)
		if err != nil {
			return fmt.Errorf("treasury principal underflow after balance guard: %w", err)
		}

		position.Principal = newPrincipal
		if err := tx.Save(&position).Error; err != nil {
			return err
		}
		if err := s.Vault.Move(tx, t.CustodyAddress(), depositor, amount); err != nil {
			return err
		}
		if err := applyAggregates(tx, t, map[string]interface{}{
			"total_principal": newTotal,
		}); err != nil {
			return err
		}
		return events.Record(tx, treasuryID, domain.EventStakeWithdrawn, depositor, map[string]interface{}{
			"amount":    amount,
			"remaining": position.Principal,
		})
	})
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// ClaimYield pays out accrued yield from both sources and re-baselines the
// accrual clock to now. The unlock clock is deliberately left alone.
func (s *Service) ClaimYield(ctx context.Context, treasuryID uuid.UUID, depositor string) (*ClaimResult, error) {
	var result ClaimResult

	err := s.withAggregateRetry(ctx, func(tx *gorm.DB) error {
		t, err := lockTreasury(tx, treasuryID)
		if err != nil {
			return err
		}
		if !t.Active {
			return domain.ErrTreasuryInactive
		}

		var position domain.StakePosition
		if err := tx.Where("treasury_id = ? AND staker_address = ?", treasuryID, depositor).First(&position).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNoStakeFound
			}
			return err
		}
		if position.Principal == 0 {
			return domain.ErrNoStakeFound
		}

		nowUnix := s.now().Unix()
		if nowUnix < position.StakedAt {
			return domain.ErrClockRegression
		}
		elapsed := uint64(nowUnix - position.StakedAt)

		baseYield, err := safemath.ProrateAnnual(position.Principal, t.BaseAnnualRateBps, elapsed)
		if err != nil {
			return err
		}
		shareBps, err := safemath.ShareBps(position.Principal, t.TotalPrincipal)
		if err != nil {
			return err
		}
		var assetYield uint64
		if t.TotalAssetValue > 0 {
			// Flat pool-wide average asset rate; per-asset rates are not
			// iterated here.
			assetYield, err = safemath.NewWide(t.TotalAssetValue).
				Mul(shareBps).
				Mul(constants.AverageAssetYieldBps).
				Mul(elapsed).
				Div(constants.BpsDenominator).
				Div(constants.BpsDenominator).
				Div(constants.SecondsPerYear).
				U64()
			if err != nil {
				return err
			}
		}
		totalYield, err := safemath.Add(baseYield, assetYield)
		if err != nil {
			return err
		}
		if totalYield == 0 {
			return domain.ErrNoYieldAvailable
		}

		newYieldPaid, err := safemath.Add(t.TotalYieldPaid, totalYield)
		if err != nil {
			return err
		}
		newClaimed, err := safemath.Add(position.RewardsClaimed, totalYield)
		if err != nil {
			return err
		}

		if err := s.Vault.Move(tx, t.CustodyAddress(), depositor, totalYield); err != nil {
			return err
		}
		position.RewardsClaimed = newClaimed
		position.StakedAt = nowUnix
		if err := tx.Save(&position).Error; err != nil {
			return err
		}
		if err := applyAggregates(tx, t, map[string]interface{}{
			"total_yield_paid": newYieldPaid,
		}); err != nil {
			return err
		}

		result = ClaimResult{BaseYield: baseYield, AssetYield: assetYield, TotalYield: totalYield}
		return events.Record(tx, treasuryID, domain.EventYieldClaimed, depositor, map[string]interface{}{
			"base_yield":  baseYield,
			"asset_yield": assetYield,
			"total_yield": totalYield,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPosition returns the depositor's position in a treasury.
func (s *Service) GetPosition(ctx context.Context, treasuryID uuid.UUID, staker string) (*domain.StakePosition, error) {
	var position domain.StakePosition
	err := s.DB.WithContext(ctx).
		Where("treasury_id = ? AND staker_address = ?", treasuryID, staker).
		First(&position).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNoStakeFound
		}
		return nil, err
	}
	return &position, nil
}

// withAggregateRetry reruns the transaction when a concurrent writer bumped
// the treasury version between our read and write.
func (s *Service) withAggregateRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < aggregateRetries; attempt++ {
		err = s.DB.WithContext(ctx).Transaction(fn)
		if !errors.Is(err, domain.ErrAggregateConflict) {
			return err
		}
		log.Warn().Int("attempt", attempt+1).Msg("treasury aggregates changed underneath, retrying")
	}
	return err
}

// unlockTime computes now+lockup, refusing int64 wrap from a lockup value
// that slipped past creation-time validation.
func unlockTime(nowUnix, lockupSeconds int64) (int64, error) {
	unlock := nowUnix + lockupSeconds
	if lockupSeconds >= 0 && unlock < nowUnix {
		return 0, safemath.ErrOverflow
	}
	return unlock, nil
}

func lockTreasury(tx *gorm.DB, treasuryID uuid.UUID) (*domain.Treasury, error) {
	var t domain.Treasury
	if err := tx.Where("treasury_id = ?", treasuryID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTreasuryNotFound
		}
		return nil, err
	}
	return &t, nil
}

// applyAggregates writes treasury aggregates guarded by the version column;
// a lost race surfaces as ErrAggregateConflict and the operation reruns.
func applyAggregates(tx *gorm.DB, t *domain.Treasury, updates map[string]interface{}) error {
	updates["version"] = t.Version + 1
	res := tx.Model(&domain.Treasury{}).
		Where("treasury_id = ? AND version = ?", t.TreasuryID, t.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAggregateConflict
	}
	return nil
}
