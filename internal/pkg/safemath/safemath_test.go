package safemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	cases := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{"simple", 2, 3, 5, false},
		{"zero", 0, 0, 0, false},
		{"at max", MaxUint64 - 1, 1, MaxUint64, false},
		{"overflow", MaxUint64, 1, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Add(tc.a, tc.b)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSub(t *testing.T) {
	got, err := Sub(10, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), got)

	_, err = Sub(4, 10)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMul(t *testing.T) {
	got, err := Mul(1_000_000, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000_000), got)

	_, err = Mul(MaxUint64, 2)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestWide_MulDivChain(t *testing.T) {
	// Product far exceeds uint64 mid-chain; the final quotient does not.
	got, err := NewWide(MaxUint64).Mul(10_000).Div(10_000).U64()
	require.NoError(t, err)
	assert.Equal(t, uint64(MaxUint64), got)
}

func TestWide_NarrowOverflow(t *testing.T) {
	_, err := NewWide(MaxUint64).Mul(2).U64()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestWide_DivideByZero(t *testing.T) {
	_, err := NewWide(1).Div(0).U64()
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestShareBps(t *testing.T) {
	got, err := ShareBps(250, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2500), got)

	// Empty pool: zero share, no error.
	got, err = ShareBps(250, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	// Floors, never rounds up.
	got, err = ShareBps(1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3333), got)
}

func TestProrateAnnual_ExactYear(t *testing.T) {
	// 1,000,000 at 5% over exactly one year pays 50,000.
	got, err := ProrateAnnual(1_000_000, 500, 31_536_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000), got)
}

func TestProrateAnnual_ZeroElapsed(t *testing.T) {
	got, err := ProrateAnnual(1_000_000, 500, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestProrateAnnual_Floors(t *testing.T) {
	// One second of 5% on 1,000,000 is ~0.0015; floors to zero.
	got, err := ProrateAnnual(1_000_000, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestAnnualRateToPerSecond(t *testing.T) {
	// floor(500 * 1e12 / 31_536_000) = 15_854_895.
	got, err := AnnualRateToPerSecond(500, 1_000_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(15_854_895), got)
}
