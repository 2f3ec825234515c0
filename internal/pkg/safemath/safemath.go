package safemath

import (
	"errors"
	"math"
	"math/big"
	"math/bits"

	"assetrail-backend/internal/pkg/constants"
)

// Checked uint64 arithmetic for treasury accounting. Every mutation of a
// balance or aggregate goes through these helpers; on overflow the caller
// aborts the whole operation instead of committing a wrapped value.

var (
	ErrOverflow     = errors.New("math overflow")
	ErrDivideByZero = errors.New("division by zero")
)

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// Mul returns a*b or ErrOverflow.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// Wide is a checked multiply-before-divide accumulator. Intermediates are
// arbitrary precision, so a*b*c/d chains cannot overflow mid-expression; only
// the final narrowing back to uint64 can fail.
type Wide struct {
	v   *big.Int
	err error
}

// NewWide starts a chain from x.
func NewWide(x uint64) Wide {
	return Wide{v: new(big.Int).SetUint64(x)}
}

// Mul multiplies the accumulator by x.
func (w Wide) Mul(x uint64) Wide {
	if w.err != nil {
		return w
	}
	return Wide{v: new(big.Int).Mul(w.v, new(big.Int).SetUint64(x))}
}

// Div floor-divides the accumulator by x.
func (w Wide) Div(x uint64) Wide {
	if w.err != nil {
		return w
	}
	if x == 0 {
		return Wide{err: ErrDivideByZero}
	}
	return Wide{v: new(big.Int).Quo(w.v, new(big.Int).SetUint64(x))}
}

// U64 narrows the accumulated value back to uint64.
func (w Wide) U64() (uint64, error) {
	if w.err != nil {
		return 0, w.err
	}
	if !w.v.IsUint64() {
		return 0, ErrOverflow
	}
	return w.v.Uint64(), nil
}

// ShareBps returns part's share of whole in basis points, floored.
// A zero whole yields a zero share rather than an error.
func ShareBps(part, whole uint64) (uint64, error) {
	if whole == 0 {
		return 0, nil
	}
	return NewWide(part).Mul(constants.BpsDenominator).Div(whole).U64()
}

// ProrateAnnual computes simple non-compounding interest on principal at an
// annual rate of rateBps, prorated over elapsedSeconds:
//
//	floor(principal * rateBps * elapsedSeconds / (10000 * 31536000))
func ProrateAnnual(principal, rateBps, elapsedSeconds uint64) (uint64, error) {
	return NewWide(principal).
		Mul(rateBps).
		Mul(elapsedSeconds).
		Div(constants.BpsDenominator).
		Div(constants.SecondsPerYear).
		U64()
}

// AnnualRateToPerSecond converts an annual basis-point rate into a scaled
// per-second rate. scale preserves precision through the division (e.g.
// 1e12 for picopoints per second).
func AnnualRateToPerSecond(rateBps, scale uint64) (uint64, error) {
	return NewWide(rateBps).Mul(scale).Div(constants.SecondsPerYear).U64()
}

// MaxUint64 is re-exported so callers probing overflow bounds don't need a
// separate math import.
const MaxUint64 = math.MaxUint64
