// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modules maintains the registry of stateful precompile modules
// and the address ranges reserved for them.
package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/contract"
)

// Module pairs a precompile contract with its address and configuration.
type Module struct {
	// ConfigKey is the json key for this precompile in chain config.
	ConfigKey string
	// Address the precompile is reachable at.
	Address common.Address
	// Contract executes calls to Address.
	Contract contract.StatefulPrecompiledContract
	// Configurator seeds the precompile's state on activation.
	Configurator contract.Configurator
}

type moduleArray []Module

func (m moduleArray) Len() int      { return len(m) }
func (m moduleArray) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address.Bytes(), m[j].Address.Bytes()) < 0
}
