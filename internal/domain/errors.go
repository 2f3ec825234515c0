package domain

import "errors"

// Sentinel errors shared by the treasury, staking and distribution services.
// Handlers map these onto HTTP status codes; services never wrap them with
// extra context so errors.Is stays cheap at the boundary.
var (
	ErrTreasuryNotFound  = errors.New("Treasury not found")
	ErrTreasuryInactive  = errors.New("Treasury is not active")
	ErrAssetNotFound     = errors.New("Asset not found")
	ErrAssetInactive     = errors.New("Asset is not active")
	ErrUnauthorized      = errors.New("Caller is not the treasury authority")
	ErrBelowMinimumStake = errors.New("Amount below minimum stake requirement")
	ErrNoStakeFound      = errors.New("No stake found for this user")
	ErrStillLocked       = errors.New("Stake is still locked")
	ErrInsufficientStake = errors.New("Insufficient stake amount")
	ErrNoYieldAvailable  = errors.New("No yield available to claim")
	ErrClockRegression   = errors.New("Clock moved backwards since last accrual")
	ErrInvalidParameters = errors.New("Invalid treasury parameters")

	// ErrInsufficientFunds is returned by the custody ledger when a transfer
	// would overdraw an account.
	ErrInsufficientFunds = errors.New("Insufficient funds for transfer")

	// ErrAggregateConflict is returned when the bounded compare-and-retry on a
	// treasury's aggregates is exhausted by concurrent writers.
	ErrAggregateConflict = errors.New("Concurrent treasury update conflict")
)
