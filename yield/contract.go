// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"math/big"
	"sync"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/cloudwalk/smart-yield/contract"
	"github.com/cloudwalk/smart-yield/token"
)

// Farm is the deposit/withdraw orchestrator. It composes the schedule, the
// earnings calculator, and the ledger into the externally invoked
// operations, and moves the staked token through the custody collaborator.
//
// Every operation is serialized behind one mutex and either completes fully
// or returns an error with no state change. Validation and arithmetic
// bounds are checked before the first mutation.
type Farm struct {
	mu sync.RWMutex

	schedule Schedule
	ledger   *Ledger
	custody  token.Custody
	sink     EventSink
	log      log.Logger
}

// NewFarm creates a farm with the given schedule and custody collaborator.
// A nil sink discards events; a nil logger gets a default.
func NewFarm(schedule Schedule, custody token.Custody, sink EventSink, logger log.Logger) *Farm {
	if sink == nil {
		sink = NopSink
	}
	if logger == nil {
		logger = log.NewTestLogger(log.InfoLevel)
	}
	return &Farm{
		schedule: schedule,
		ledger:   NewLedger(sink),
		custody:  custody,
		sink:     sink,
		log:      logger,
	}
}

// Schedule returns the farm's schedule parameters.
func (f *Farm) Schedule() Schedule {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.schedule
}

func now(db contract.StateDB) uint64 {
	return db.GetBlockTime()
}

// =========================================================================
// Pause / ownership
// =========================================================================

// Paused reports whether state-mutating operations are suspended.
func (f *Farm) Paused(db contract.StateDB) bool {
	val := db.GetState(farmAddr, pausedKey)
	return val[31] != 0
}

// Owner returns the address allowed to pause and unpause.
func (f *Farm) Owner(db contract.StateDB) common.Address {
	val := db.GetState(farmAddr, ownerKey)
	return common.BytesToAddress(val[12:])
}

// SetOwner installs the pause controller. Called once at activation.
func (f *Farm) SetOwner(db contract.StateDB, owner common.Address) {
	var val common.Hash
	copy(val[12:], owner.Bytes())
	db.SetState(farmAddr, ownerKey, val)
}

// Pause suspends all state-mutating operations.
func (f *Farm) Pause(db contract.StateDB, caller common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if caller != f.Owner(db) {
		return ErrUnauthorized
	}
	f.setPaused(db, true)
	f.log.Info("farm paused", "by", caller)
	return nil
}

// Unpause resumes state-mutating operations.
func (f *Farm) Unpause(db contract.StateDB, caller common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if caller != f.Owner(db) {
		return ErrUnauthorized
	}
	f.setPaused(db, false)
	f.log.Info("farm unpaused", "by", caller)
	return nil
}

func (f *Farm) setPaused(db contract.StateDB, paused bool) {
	var val common.Hash
	if paused {
		val[31] = 1
	}
	db.SetState(farmAddr, pausedKey, val)
}

// =========================================================================
// Core operations
// =========================================================================

// Deposit pulls amount of the staked token from user into custody and
// credits it, plus any earnings accrued since the account's anchor time,
// to the account. The anchor time is reset so the next accrual compounds
// on the new balance.
func (f *Farm) Deposit(db contract.StateDB, user common.Address, amount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Paused(db) {
		return ErrPaused
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	at := now(db)
	acct := f.ledger.Account(db, user)

	earnings := big.NewInt(0)
	if acct.Exists {
		var err error
		earnings, err = f.schedule.TotalEarnings(acct.Balance, acct.AnchorTime, at)
		if err != nil {
			return err
		}
	}

	credit := new(big.Int).Add(amount, earnings)
	newBalance := new(big.Int).Add(acct.Balance, credit)
	if newBalance.Cmp(MaxBalance) > 0 {
		return ErrArithmeticOverflow
	}
	if new(big.Int).Add(f.ledger.TotalBalance(db), credit).Cmp(maxTotal) > 0 {
		return ErrArithmeticOverflow
	}

	// Custody pull happens before any ledger mutation; a failed pull
	// aborts with no state change.
	if err := f.custody.PullFrom(db, user, amount); err != nil {
		return err
	}

	if err := f.ledger.SetAccount(db, user, newBalance, at); err != nil {
		return err
	}
	if err := f.ledger.addTotal(db, credit); err != nil {
		return err
	}

	f.sink.Replenished(ReplenishedEvent{User: user, Amount: new(big.Int).Set(amount), Earnings: earnings})
	f.log.Debug("deposit", "user", user, "amount", amount, "earnings", earnings)
	return nil
}

// Withdraw pays out amount plus all earnings accrued on the full balance.
// The account must be in the unlocked phase of its cycle.
func (f *Farm) Withdraw(db contract.StateDB, user common.Address, amount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.withdraw(db, user, amount, false)
}

// WithdrawAll withdraws the full balance plus earnings.
func (f *Farm) WithdrawAll(db contract.StateDB, user common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct := f.ledger.Account(db, user)
	return f.withdraw(db, user, acct.Balance, false)
}

// ExitAll withdraws the full balance forfeiting all accrued earnings. It
// is gated on the unlocked phase exactly like WithdrawAll; forfeiting
// earnings does not bypass the lock.
func (f *Farm) ExitAll(db contract.StateDB, user common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct := f.ledger.Account(db, user)
	return f.withdraw(db, user, acct.Balance, true)
}

func (f *Farm) withdraw(db contract.StateDB, user common.Address, amount *big.Int, forfeit bool) error {
	if f.Paused(db) {
		return ErrPaused
	}

	acct := f.ledger.Account(db, user)
	if !acct.Exists || acct.Balance.Sign() == 0 {
		return ErrInsufficientBalance
	}

	at := now(db)
	_, _, phase, err := f.schedule.Resolve(acct.AnchorTime, at)
	if err != nil {
		return err
	}
	if phase != PhaseUnlocked {
		return ErrAccountLocked
	}

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.Cmp(acct.Balance) > 0 {
		return ErrInsufficientBalance
	}

	earnings := big.NewInt(0)
	if !forfeit {
		earnings, err = f.schedule.TotalEarnings(acct.Balance, acct.AnchorTime, at)
		if err != nil {
			return err
		}
	}

	newBalance := new(big.Int).Sub(acct.Balance, amount)
	if err := f.ledger.SetAccount(db, user, newBalance, at); err != nil {
		return err
	}
	if err := f.ledger.subTotal(db, amount); err != nil {
		return err
	}

	// Custody push happens after the ledger mutation; conservation keeps
	// custody solvent for every payout the ledger admits.
	payout := new(big.Int).Add(amount, earnings)
	if err := f.custody.PushTo(db, user, payout); err != nil {
		return err
	}

	f.sink.Withdrawn(WithdrawnEvent{User: user, Amount: new(big.Int).Set(amount), Earnings: earnings})
	f.log.Debug("withdraw", "user", user, "amount", amount, "earnings", earnings, "forfeit", forfeit)
	return nil
}

// Transfer moves from's entire account, balance and anchor time both, to a
// fresh address. The recipient must never have existed; transfers never
// merge accounts. No token moves: custody is unchanged, only the internal
// claim moves. The source account is zeroed but keeps its exists flag.
func (f *Farm) Transfer(db contract.StateDB, from, to common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Paused(db) {
		return ErrPaused
	}
	if from == to {
		return ErrSelfTransfer
	}

	src := f.ledger.Account(db, from)
	if !src.Exists || src.Balance.Sign() == 0 {
		return ErrNoBalance
	}
	if f.ledger.Account(db, to).Exists {
		return ErrAccountExists
	}

	if err := f.ledger.SetAccount(db, to, src.Balance, src.AnchorTime); err != nil {
		return err
	}
	if err := f.ledger.SetAccount(db, from, big.NewInt(0), now(db)); err != nil {
		return err
	}

	f.sink.Transferred(TransferredEvent{From: from, To: to, Balance: src.Balance, AnchorTime: src.AnchorTime})
	f.log.Debug("transfer", "from", from, "to", to, "balance", src.Balance)
	return nil
}

// =========================================================================
// Queries
// =========================================================================

// AccountAt returns user's account snapshot evaluated at reference time at.
// A never-touched account returns the zero snapshot with Exists false.
func (f *Farm) AccountAt(db contract.StateDB, user common.Address, at uint64) (AccountSnapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	acct := f.ledger.Account(db, user)
	if !acct.Exists {
		return AccountSnapshot{
			Balance:        big.NewInt(0),
			LockEarnings:   big.NewInt(0),
			UnlockEarnings: big.NewInt(0),
		}, nil
	}

	nextLockAt, nextUnlockAt, phase, err := f.schedule.Resolve(acct.AnchorTime, at)
	if err != nil {
		return AccountSnapshot{}, err
	}
	lock, unlock, err := f.schedule.Earnings(acct.Balance, acct.AnchorTime, at)
	if err != nil {
		return AccountSnapshot{}, err
	}

	return AccountSnapshot{
		Exists:         true,
		Balance:        acct.Balance,
		LockEarnings:   lock,
		UnlockEarnings: unlock,
		AnchorTime:     acct.AnchorTime,
		NextLockAt:     nextLockAt,
		NextUnlockAt:   nextUnlockAt,
		Phase:          phase,
	}, nil
}

// Account returns user's snapshot evaluated at the current block time.
func (f *Farm) Account(db contract.StateDB, user common.Address) (AccountSnapshot, error) {
	return f.AccountAt(db, user, now(db))
}

// TotalBalance returns the global total balance counter.
func (f *Farm) TotalBalance(db contract.StateDB) *big.Int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ledger.TotalBalance(db)
}
