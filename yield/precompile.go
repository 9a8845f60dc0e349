// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"encoding/binary"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/contract"
	"github.com/cloudwalk/smart-yield/token"
)

// Function selectors (first 4 bytes of keccak256 of function signature)
var (
	// State-mutating functions
	SelectorDeposit     = [4]byte{0xb6, 0xb5, 0x5f, 0x25} // deposit(uint256)
	SelectorWithdraw    = [4]byte{0x2e, 0x1a, 0x7d, 0x4d} // withdraw(uint256)
	SelectorWithdrawAll = [4]byte{0x85, 0x38, 0x28, 0xb6} // withdrawAll()
	SelectorExitAll     = [4]byte{0x7f, 0x51, 0xbb, 0x1f} // exitAll()
	SelectorTransfer    = [4]byte{0x1a, 0x69, 0x52, 0x30} // transfer(address)
	SelectorPause       = [4]byte{0x84, 0x56, 0xcb, 0x59} // pause()
	SelectorUnpause     = [4]byte{0x3f, 0x4b, 0xa8, 0x3a} // unpause()

	// View functions
	SelectorGetAccount   = [4]byte{0xfb, 0xcb, 0xc0, 0xf1} // getAccount(address)
	SelectorTotalBalance = [4]byte{0xad, 0x7a, 0x67, 0x2f} // totalBalance()
	SelectorPaused       = [4]byte{0x5c, 0x97, 0x5a, 0xbb} // paused()
	SelectorOwner        = [4]byte{0x8d, 0xa5, 0xcb, 0x5b} // owner()
)

// FarmInstance is the singleton farm behind the precompile, wired to the
// default schedule with the precompile account itself holding custody.
var FarmInstance = NewFarm(DefaultSchedule(), token.NewNative(farmAddr), NopSink, nil)

// YieldFarmPrecompile implements the stateful precompiled contract interface.
var YieldFarmPrecompile = &farmPrecompile{farm: FarmInstance}

type farmPrecompile struct {
	farm *Farm
}

// Run executes the yield farm precompile.
func (p *farmPrecompile) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	stateDB := accessibleState.GetStateDB()

	if len(input) < 4 {
		return nil, suppliedGas, ErrInvalidInput
	}

	var selector [4]byte
	copy(selector[:], input[:4])
	args := input[4:]

	switch selector {
	// State-mutating functions
	case SelectorDeposit:
		return p.deposit(stateDB, caller, args, suppliedGas, readOnly)
	case SelectorWithdraw:
		return p.withdraw(stateDB, caller, args, suppliedGas, readOnly)
	case SelectorWithdrawAll:
		return p.withdrawAll(stateDB, caller, suppliedGas, readOnly)
	case SelectorExitAll:
		return p.exitAll(stateDB, caller, suppliedGas, readOnly)
	case SelectorTransfer:
		return p.transfer(stateDB, caller, args, suppliedGas, readOnly)
	case SelectorPause:
		return p.pause(stateDB, caller, suppliedGas, readOnly)
	case SelectorUnpause:
		return p.unpause(stateDB, caller, suppliedGas, readOnly)

	// View functions
	case SelectorGetAccount:
		return p.getAccount(stateDB, args, suppliedGas)
	case SelectorTotalBalance:
		return p.totalBalance(stateDB, suppliedGas)
	case SelectorPaused:
		return p.paused(stateDB, suppliedGas)
	case SelectorOwner:
		return p.owner(stateDB, suppliedGas)

	default:
		return nil, suppliedGas, ErrInvalidInput
	}
}

func deductGas(suppliedGas, cost uint64) (uint64, error) {
	if suppliedGas < cost {
		return 0, ErrInsufficientGas
	}
	return suppliedGas - cost, nil
}

// State-mutating functions

func (p *farmPrecompile) deposit(
	stateDB contract.StateDB,
	caller common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasDeposit)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if len(args) < 32 {
		return nil, remainingGas, ErrInvalidInput
	}

	amount := new(big.Int).SetBytes(args[:32])
	if err := p.farm.Deposit(stateDB, caller, amount); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) withdraw(
	stateDB contract.StateDB,
	caller common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasWithdraw)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if len(args) < 32 {
		return nil, remainingGas, ErrInvalidInput
	}

	amount := new(big.Int).SetBytes(args[:32])
	if err := p.farm.Withdraw(stateDB, caller, amount); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) withdrawAll(
	stateDB contract.StateDB,
	caller common.Address,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasWithdraw)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if err := p.farm.WithdrawAll(stateDB, caller); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) exitAll(
	stateDB contract.StateDB,
	caller common.Address,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasExit)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if err := p.farm.ExitAll(stateDB, caller); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) transfer(
	stateDB contract.StateDB,
	caller common.Address,
	args []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasTransfer)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if len(args) < 32 {
		return nil, remainingGas, ErrInvalidInput
	}

	to := common.BytesToAddress(args[12:32])
	if err := p.farm.Transfer(stateDB, caller, to); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) pause(
	stateDB contract.StateDB,
	caller common.Address,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasAdmin)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if err := p.farm.Pause(stateDB, caller); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

func (p *farmPrecompile) unpause(
	stateDB contract.StateDB,
	caller common.Address,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasAdmin)
	if err != nil {
		return nil, 0, err
	}
	if readOnly {
		return nil, remainingGas, ErrReadOnly
	}
	if err := p.farm.Unpause(stateDB, caller); err != nil {
		return nil, remainingGas, err
	}
	return []byte{}, remainingGas, nil
}

// View functions

// getAccount returns the snapshot packed as eight 32-byte words:
// exists, balance, lockEarnings, unlockEarnings, anchorTime, nextLockAt,
// nextUnlockAt, phase.
func (p *farmPrecompile) getAccount(
	stateDB contract.StateDB,
	args []byte,
	suppliedGas uint64,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasQuery)
	if err != nil {
		return nil, 0, err
	}
	if len(args) < 32 {
		return nil, remainingGas, ErrInvalidInput
	}

	user := common.BytesToAddress(args[12:32])
	snap, err := p.farm.Account(stateDB, user)
	if err != nil {
		return nil, remainingGas, err
	}

	out := make([]byte, 0, 8*32)
	out = appendBool(out, snap.Exists)
	out = appendBig(out, snap.Balance)
	out = appendBig(out, snap.LockEarnings)
	out = appendBig(out, snap.UnlockEarnings)
	out = appendUint64(out, snap.AnchorTime)
	out = appendUint64(out, snap.NextLockAt)
	out = appendUint64(out, snap.NextUnlockAt)
	out = appendUint64(out, uint64(snap.Phase))
	return out, remainingGas, nil
}

func (p *farmPrecompile) totalBalance(
	stateDB contract.StateDB,
	suppliedGas uint64,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasQuery)
	if err != nil {
		return nil, 0, err
	}
	return appendBig(nil, p.farm.TotalBalance(stateDB)), remainingGas, nil
}

func (p *farmPrecompile) paused(
	stateDB contract.StateDB,
	suppliedGas uint64,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasQuery)
	if err != nil {
		return nil, 0, err
	}
	return appendBool(nil, p.farm.Paused(stateDB)), remainingGas, nil
}

func (p *farmPrecompile) owner(
	stateDB contract.StateDB,
	suppliedGas uint64,
) ([]byte, uint64, error) {
	remainingGas, err := deductGas(suppliedGas, GasQuery)
	if err != nil {
		return nil, 0, err
	}
	var word [32]byte
	copy(word[12:], p.farm.Owner(stateDB).Bytes())
	return word[:], remainingGas, nil
}

// ABI word helpers

func appendBig(out []byte, v *big.Int) []byte {
	var word [32]byte
	v.FillBytes(word[:])
	return append(out, word[:]...)
}

func appendUint64(out []byte, v uint64) []byte {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], v)
	return append(out, word[:]...)
}

func appendBool(out []byte, v bool) []byte {
	var word [32]byte
	if v {
		word[31] = 1
	}
	return append(out, word[:]...)
}
