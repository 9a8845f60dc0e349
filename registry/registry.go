// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry catalogs the stateful precompiles shipped by this module
// and pulls them in for side-effect registration.
package registry

import (
	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/modules"

	// Force registration of the yield farm precompile.
	_ "github.com/cloudwalk/smart-yield/yield"
)

// ============================================================================
// PRECOMPILE ADDRESS SCHEME
// ============================================================================
//
// All precompiles shipped here live on the markets page of the address
// space, trailing-significant 20-byte addresses:
//   Format: 0x00000000000000000000000000000000000090II
//
// II is the item slot within the page:
//   0x90 → yield farm (time-locked staking ledger)
//   0x91-0x9F → reserved for further yield products

const (
	// YieldFarm is the time-locked staking ledger.
	YieldFarm = "0x0000000000000000000000000000000000009090"
)

// PrecompileInfo contains metadata about a registered precompile.
type PrecompileInfo struct {
	Address     string
	Name        string
	Description string
	GasBase     uint64
}

// AllPrecompiles lists the precompiles this module ships.
var AllPrecompiles = []PrecompileInfo{
	{YieldFarm, "YIELD_FARM", "Time-locked staking ledger with cyclic withdrawal windows", 20000},
}

// GetPrecompileAddress returns the address for a precompile by name.
func GetPrecompileAddress(name string) common.Address {
	for _, p := range AllPrecompiles {
		if p.Name == name {
			return common.HexToAddress(p.Address)
		}
	}
	return common.Address{}
}

// IsRegistered reports whether a module is registered at addr.
func IsRegistered(addr common.Address) bool {
	_, ok := modules.GetPrecompileModuleByAddress(addr)
	return ok
}

// RegisteredAddresses returns the addresses of all registered modules in
// ascending order.
func RegisteredAddresses() []common.Address {
	regs := modules.RegisteredModules()
	addrs := make([]common.Address, len(regs))
	for i, m := range regs {
		addrs[i] = m.Address
	}
	return addrs
}
