package constants

// Rate and time constants shared by the treasury, staking and distribution
// modules. Rates are expressed in basis points (10000 bps = 100%).
const (
	// BpsDenominator converts basis points to a fraction.
	BpsDenominator uint64 = 10_000

	// SecondsPerYear is the accrual year used for prorating annual rates.
	SecondsPerYear uint64 = 31_536_000

	// AverageAssetYieldBps is the flat pool-wide asset yield rate applied when
	// computing a staker's asset-yield share. Per-asset rates are recorded but
	// intentionally not iterated during claims.
	AverageAssetYieldBps uint64 = 500

	// AssetApyBoostBps is the fixed boost added to a treasury's base rate by
	// the total-APY estimate, standing in for a weighted asset-portfolio rate.
	AssetApyBoostBps uint64 = 1_000

	// MaxLockupSeconds caps a treasury's lockup at a century. Keeps
	// unlock timestamps far away from int64 wrap.
	MaxLockupSeconds int64 = 100 * 365 * 86_400
)
