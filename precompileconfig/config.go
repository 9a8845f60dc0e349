// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration types used to activate
// and upgrade stateful precompiles from chain config JSON.
package precompileconfig

import (
	"github.com/luxfi/geth/common"
)

// Config is implemented by each precompile's configuration struct.
type Config interface {
	// Key returns the unique json key used for this precompile in chain config.
	Key() string
	// Timestamp returns the activation timestamp, nil if never activated.
	Timestamp() *uint64
	// IsDisabled reports whether this upgrade deactivates the precompile.
	IsDisabled() bool
	// Verify checks the config's internal consistency.
	Verify(chainConfig ChainConfig) error
	// Equal reports whether cfg describes the same configuration.
	Equal(cfg Config) bool
}

// ChainConfig is the subset of chain configuration visible to precompile
// config verification.
type ChainConfig interface {
	IsPrecompileEnabled(addr common.Address, timestamp uint64) bool
}

// Upgrade carries the activation timestamp shared by all precompile configs.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp,omitempty"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the activation timestamp, nil if unset.
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal reports whether both upgrades activate at the same timestamp.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if other == nil {
		return false
	}
	if u.Disable != other.Disable {
		return false
	}
	if u.BlockTimestamp == nil || other.BlockTimestamp == nil {
		return u.BlockTimestamp == other.BlockTimestamp
	}
	return *u.BlockTimestamp == *other.BlockTimestamp
}
