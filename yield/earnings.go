// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"math/big"
)

// Accrue computes simple-interest earnings on amount over duration at the
// given retained-fraction rate. The value is prorated linearly over the
// reward period, then the paid fraction is taken in one truncating
// division:
//
//	value    = floor(amount * duration / period)
//	earnings = floor((value*base - value*rate) / base)
//
// The full numerator is formed before the outer division; intermediate
// results are never truncated and the two divisions must stay in this
// order.
func Accrue(amount *big.Int, duration, period, rate, base uint64) *big.Int {
	if amount == nil || amount.Sign() == 0 || duration == 0 {
		return big.NewInt(0)
	}

	value := new(big.Int).Mul(amount, new(big.Int).SetUint64(duration))
	value.Div(value, new(big.Int).SetUint64(period))

	earnings := new(big.Int).Mul(value, new(big.Int).SetUint64(base))
	earnings.Sub(earnings, new(big.Int).Mul(value, new(big.Int).SetUint64(rate)))
	earnings.Div(earnings, new(big.Int).SetUint64(base))
	return earnings
}

// Earnings computes the lock-phase and unlock-phase earnings accrued on
// balance between anchor and ref. Compounding happens only across touches:
// within one call the model is strictly linear, and the caller folds the
// result into the balance before the next accrual.
func (s Schedule) Earnings(balance *big.Int, anchor, ref uint64) (lock, unlock *big.Int, err error) {
	lockPortion, unlockPortion, err := s.Split(anchor, ref)
	if err != nil {
		return nil, nil, err
	}
	lock = Accrue(balance, lockPortion, s.RewardPeriod, s.LockRate, RateBase)
	unlock = Accrue(balance, unlockPortion, s.RewardPeriod, s.UnlockRate, RateBase)
	return lock, unlock, nil
}

// TotalEarnings is the sum of both phase portions of Earnings.
func (s Schedule) TotalEarnings(balance *big.Int, anchor, ref uint64) (*big.Int, error) {
	lock, unlock, err := s.Earnings(balance, anchor, ref)
	if err != nil {
		return nil, err
	}
	return lock.Add(lock, unlock), nil
}
