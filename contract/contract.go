// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the interfaces between stateful precompiled
// contracts and the EVM that hosts them.
package contract

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/precompileconfig"
)

// StateDB is the subset of EVM state access needed by stateful precompiles.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key common.Hash, value common.Hash)

	GetBalance(addr common.Address) *uint256.Int
	AddBalance(addr common.Address, amount *uint256.Int)
	SubBalance(addr common.Address, amount *uint256.Int)

	Exist(addr common.Address) bool
	CreateAccount(addr common.Address)

	GetBlockNumber() uint64
	GetBlockTime() uint64
}

// AccessibleState exposes the state reachable from a precompile invocation.
type AccessibleState interface {
	GetStateDB() StateDB
}

// ConfigurationBlockContext describes the block at which a precompile is
// being configured (activated or upgraded).
type ConfigurationBlockContext interface {
	Number() uint64
	Timestamp() uint64
}

// StatefulPrecompiledContract is the interface every precompile implements.
// Run executes the contract with the given input and gas budget and returns
// the output, the remaining gas, and an error if execution reverted.
type StatefulPrecompiledContract interface {
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// Configurator sets up a precompile's initial state when its activation
// timestamp is reached.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
