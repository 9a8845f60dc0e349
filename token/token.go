// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token moves the staked token between user accounts and the farm's
// custody. The farm only depends on the Custody interface, so tests can
// substitute a failing or recording implementation.
package token

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/contract"
)

// ErrTransferFailed is returned when a pull or push cannot be completed.
var ErrTransferFailed = errors.New("token transfer failed")

// Custody is the token movement collaborator used by the farm.
// PullFrom moves amount from owner into custody; PushTo pays amount out of
// custody to recipient. Both either complete fully or leave balances
// untouched.
type Custody interface {
	PullFrom(db contract.StateDB, owner common.Address, amount *big.Int) error
	PushTo(db contract.StateDB, recipient common.Address, amount *big.Int) error
}

// Native implements Custody over the chain's native balance, holding
// custody funds at a fixed address.
type Native struct {
	holder common.Address
}

// NewNative returns a Custody holding funds at holder.
func NewNative(holder common.Address) *Native {
	return &Native{holder: holder}
}

// Holder returns the custody address.
func (n *Native) Holder() common.Address {
	return n.holder
}

func (n *Native) PullFrom(db contract.StateDB, owner common.Address, amount *big.Int) error {
	return n.move(db, owner, n.holder, amount)
}

func (n *Native) PushTo(db contract.StateDB, recipient common.Address, amount *big.Int) error {
	return n.move(db, n.holder, recipient, amount)
}

func (n *Native) move(db contract.StateDB, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrTransferFailed
	}
	if amount.Sign() == 0 {
		return nil
	}
	value, overflow := uint256.FromBig(amount)
	if overflow {
		return ErrTransferFailed
	}
	if db.GetBalance(from).Lt(value) {
		return ErrTransferFailed
	}
	db.SubBalance(from, value)
	db.AddBalance(to, value)
	return nil
}
