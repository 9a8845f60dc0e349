// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccrue(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		duration uint64
		period   uint64
		rate     uint64
		want     int64
	}{
		{
			name:     "full period at lock rate",
			amount:   10000,
			duration: 30 * Day,
			period:   30 * Day,
			rate:     9700,
			want:     300,
		},
		{
			name:     "half period at unlock rate",
			amount:   10000,
			duration: 15 * Day,
			period:   30 * Day,
			rate:     9990,
			want:     5,
		},
		{
			name:     "zero duration",
			amount:   10000,
			duration: 0,
			period:   30 * Day,
			rate:     9700,
			want:     0,
		},
		{
			name:     "zero amount",
			amount:   0,
			duration: 30 * Day,
			period:   30 * Day,
			rate:     9700,
			want:     0,
		},
		{
			name:     "rate equals base pays nothing",
			amount:   10000,
			duration: 30 * Day,
			period:   30 * Day,
			rate:     RateBase,
			want:     0,
		},
		{
			name:     "small value truncates to zero",
			amount:   1,
			duration: Day,
			period:   30 * Day,
			rate:     9700,
			want:     0,
		},
		{
			name:     "truncation happens before rate cut",
			amount:   7,
			duration: 10 * Day,
			period:   30 * Day,
			rate:     5000,
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accrue(big.NewInt(tt.amount), tt.duration, tt.period, tt.rate, RateBase)
			require.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestAccrueNilAmount(t *testing.T) {
	got := Accrue(nil, 30*Day, 30*Day, 9700, RateBase)
	require.Zero(t, got.Sign())
}

func TestEarningsAcrossPhases(t *testing.T) {
	s := DefaultSchedule()
	balance := big.NewInt(10000)

	// Entire first lock interval.
	lock, unlock, err := s.Earnings(balance, 0, 30*Day)
	require.NoError(t, err)
	require.EqualValues(t, 300, lock.Int64())
	require.Zero(t, unlock.Sign())

	// Lock interval plus half the unlock interval.
	lock, unlock, err = s.Earnings(balance, 0, 45*Day)
	require.NoError(t, err)
	require.EqualValues(t, 300, lock.Int64())
	require.EqualValues(t, 5, unlock.Int64())

	total, err := s.TotalEarnings(balance, 0, 45*Day)
	require.NoError(t, err)
	require.EqualValues(t, 305, total.Int64())
}

func TestEarningsNoCompoundingWithinCall(t *testing.T) {
	s := DefaultSchedule()
	balance := big.NewInt(10000)

	// Two full cycles in one call accrue linearly on the same balance.
	total, err := s.TotalEarnings(balance, 0, 120*Day)
	require.NoError(t, err)

	// 60 days locked at 3.00% plus 60 days unlocked at 0.10%, all on the
	// original balance: 600 + 10 = 610, not the compounded figure.
	require.EqualValues(t, 610, total.Int64())
}

func TestEarningsRefBeforeAnchor(t *testing.T) {
	s := DefaultSchedule()
	_, _, err := s.Earnings(big.NewInt(10000), 100, 0)
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestEarningsLargeBalance(t *testing.T) {
	s := DefaultSchedule()

	// A balance at the storable maximum must accrue without overflow.
	total, err := s.TotalEarnings(MaxBalance, 0, 30*Day)
	require.NoError(t, err)

	want := new(big.Int).Mul(MaxBalance, big.NewInt(RateBase-DefaultLockRate))
	want.Div(want, big.NewInt(RateBase))
	require.Zero(t, total.Cmp(want))
}

func BenchmarkAccrue(b *testing.B) {
	amount := big.NewInt(123456789)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Accrue(amount, 45*Day, 30*Day, 9700, RateBase)
	}
}
