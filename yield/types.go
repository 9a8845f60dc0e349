// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package yield implements the time-locked staking precompile. Users deposit
// the staked token, accrue interest that alternates between a high locked
// rate and a low unlocked rate on a repeating cycle, and withdraw principal
// plus accrued earnings once the cycle is in its unlock sub-interval.
package yield

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"
)

// YieldFarmAddress is the precompile address, inside the markets range.
const YieldFarmAddress = "0x0000000000000000000000000000000000009090"

var farmAddr = common.HexToAddress(YieldFarmAddress)

// Storage key prefixes for farm state
var (
	farmAccountPrefix = []byte("farm/acc")  // Per-address deposit accounts
	farmGlobalPrefix  = []byte("farm/glob") // Total balance, pause flag, owner
)

// Gas costs
const (
	GasDeposit  uint64 = 20_000 // Deposit stake
	GasWithdraw uint64 = 20_000 // Withdraw stake and earnings
	GasExit     uint64 = 15_000 // Exit forfeiting earnings
	GasTransfer uint64 = 10_000 // Move an account to a new address
	GasAdmin    uint64 = 5_000  // Pause/unpause
	GasQuery    uint64 = 2_000  // Account and total balance reads
)

// Day in seconds; schedule durations are expressed in whole seconds.
const Day uint64 = 24 * 60 * 60

// Default schedule parameters. Rates are the retained fraction of the
// reward-period value: earnings = value*(RateBase-rate)/RateBase, so
// 9700 pays 3.00% per reward period and 9990 pays 0.10%.
const (
	DefaultLockDuration   = 30 * Day
	DefaultUnlockDuration = 30 * Day
	DefaultRewardPeriod   = 30 * Day
	DefaultLockRate       = 9700
	DefaultUnlockRate     = 9990
	RateBase              = 10000
)

// Phase is the position of an account within its lock/unlock cycle.
type Phase uint8

const (
	PhaseLocked Phase = iota
	PhaseUnlocked
)

func (p Phase) String() string {
	switch p {
	case PhaseLocked:
		return "locked"
	case PhaseUnlocked:
		return "unlocked"
	}
	return "unknown"
}

// Schedule holds the cycle and rate parameters shared by all accounts.
// The single-phase farming variant is the degenerate schedule with
// UnlockDuration == 0.
type Schedule struct {
	LockDuration   uint64 // Lock sub-interval length (seconds)
	UnlockDuration uint64 // Unlock sub-interval length (seconds)
	RewardPeriod   uint64 // Period the rates are quoted over (seconds)
	LockRate       uint64 // Retained fraction during lock, out of RateBase
	UnlockRate     uint64 // Retained fraction during unlock, out of RateBase
}

// DefaultSchedule returns the production 30d/30d schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		LockDuration:   DefaultLockDuration,
		UnlockDuration: DefaultUnlockDuration,
		RewardPeriod:   DefaultRewardPeriod,
		LockRate:       DefaultLockRate,
		UnlockRate:     DefaultUnlockRate,
	}
}

// Period returns the full cycle length.
func (s Schedule) Period() uint64 {
	return s.LockDuration + s.UnlockDuration
}

// Account is one address's deposit. Balance carries principal plus all
// earnings folded in at each touch; AnchorTime is the timestamp elapsed
// duration is measured from, reset to "now" on every balance change.
// Exists distinguishes "never deposited" from "balance is zero" and is
// never reset once true.
type Account struct {
	Balance    *big.Int
	AnchorTime uint64
	Exists     bool
}

// AccountSnapshot is the read-only view of an account evaluated at a
// reference time.
type AccountSnapshot struct {
	Exists         bool
	Balance        *big.Int
	LockEarnings   *big.Int
	UnlockEarnings *big.Int
	AnchorTime     uint64
	NextLockAt     uint64
	NextUnlockAt   uint64
	Phase          Phase
}

// MaxBalance is the largest storable account balance (uint128).
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// maxTotal is the largest storable total balance (one storage word).
var maxTotal = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidTimeRange    = errors.New("reference time precedes anchor time")
	ErrAccountLocked       = errors.New("account is in the locked phase")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoBalance           = errors.New("account has no balance")
	ErrSelfTransfer        = errors.New("cannot transfer to self")
	ErrAccountExists       = errors.New("recipient account already exists")
	ErrArithmeticOverflow  = errors.New("balance arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("balance arithmetic underflow")
	ErrPaused              = errors.New("operations are paused")
	ErrUnauthorized        = errors.New("caller is not the owner")
	ErrInsufficientGas     = errors.New("insufficient gas")
	ErrInvalidInput        = errors.New("invalid input")
	ErrReadOnly            = errors.New("write operation in read-only call")
)

// makeStorageKey creates a storage key from prefix and identifier
func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}
