// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"encoding/binary"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/contract"
)

// Ledger owns the per-address deposit accounts and the conserved total
// balance counter. SetAccount is the sole account mutation primitive; every
// higher-level operation routes through it so that change records are never
// skipped.
//
// Each account is packed into one storage word: balance in bytes 0..16
// (uint128 big-endian), anchor time in bytes 16..24, exists flag at byte 24.
type Ledger struct {
	sink EventSink
}

// NewLedger returns a ledger emitting change records to sink.
func NewLedger(sink EventSink) *Ledger {
	if sink == nil {
		sink = NopSink
	}
	return &Ledger{sink: sink}
}

func ledgerAccountKey(user common.Address) common.Hash {
	return makeStorageKey(farmAccountPrefix, user.Bytes())
}

var (
	totalBalanceKey = makeStorageKey(farmGlobalPrefix, []byte("total"))
	pausedKey       = makeStorageKey(farmGlobalPrefix, []byte("paused"))
	ownerKey        = makeStorageKey(farmGlobalPrefix, []byte("owner"))
)

func packAccount(a Account) common.Hash {
	var data common.Hash
	balanceBytes := a.Balance.Bytes()
	copy(data[16-len(balanceBytes):16], balanceBytes)
	binary.BigEndian.PutUint64(data[16:24], a.AnchorTime)
	if a.Exists {
		data[24] = 1
	}
	return data
}

func unpackAccount(data common.Hash) Account {
	return Account{
		Balance:    new(big.Int).SetBytes(data[:16]),
		AnchorTime: binary.BigEndian.Uint64(data[16:24]),
		Exists:     data[24] != 0,
	}
}

// Account reads user's deposit account. A never-touched account is returned
// with Exists == false and a zero balance.
func (l *Ledger) Account(db contract.StateDB, user common.Address) Account {
	return unpackAccount(db.GetState(farmAddr, ledgerAccountKey(user)))
}

// SetAccount overwrites user's balance and anchor time, marks the account
// as existing, and emits a change record carrying old and new values.
// Balances outside the storable range fail before anything is written.
func (l *Ledger) SetAccount(db contract.StateDB, user common.Address, balance *big.Int, anchorTime uint64) error {
	if balance.Sign() < 0 {
		return ErrArithmeticUnderflow
	}
	if balance.Cmp(MaxBalance) > 0 {
		return ErrArithmeticOverflow
	}

	old := l.Account(db, user)
	db.SetState(farmAddr, ledgerAccountKey(user), packAccount(Account{
		Balance:    balance,
		AnchorTime: anchorTime,
		Exists:     true,
	}))

	l.sink.AccountChanged(AccountChangedEvent{
		User:          user,
		NewBalance:    new(big.Int).Set(balance),
		OldBalance:    old.Balance,
		NewAnchorTime: anchorTime,
		OldAnchorTime: old.AnchorTime,
	})
	return nil
}

// TotalBalance returns the sum of all existing accounts' balances.
func (l *Ledger) TotalBalance(db contract.StateDB) *big.Int {
	val := db.GetState(farmAddr, totalBalanceKey)
	return new(big.Int).SetBytes(val[:])
}

// addTotal increases the total balance counter by delta.
func (l *Ledger) addTotal(db contract.StateDB, delta *big.Int) error {
	total := l.TotalBalance(db)
	total.Add(total, delta)
	if total.Cmp(maxTotal) > 0 {
		return ErrArithmeticOverflow
	}
	db.SetState(farmAddr, totalBalanceKey, common.BigToHash(total))
	return nil
}

// subTotal decreases the total balance counter by delta. A decrease past
// zero means a caller tried to remove more than was ever added; it fails
// loudly rather than wrapping.
func (l *Ledger) subTotal(db contract.StateDB, delta *big.Int) error {
	total := l.TotalBalance(db)
	total.Sub(total, delta)
	if total.Sign() < 0 {
		return ErrArithmeticUnderflow
	}
	db.SetState(farmAddr, totalBalanceKey, common.BigToHash(total))
	return nil
}
