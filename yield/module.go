// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"fmt"

	"github.com/luxfi/geth/common"

	"github.com/cloudwalk/smart-yield/contract"
	"github.com/cloudwalk/smart-yield/modules"
	"github.com/cloudwalk/smart-yield/precompileconfig"
)

var _ contract.Configurator = (*configurator)(nil)
var _ contract.StatefulPrecompiledContract = (*farmPrecompile)(nil)
var _ precompileconfig.Config = (*Config)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "yieldFarmConfig"

// Module is the precompile module.
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      common.HexToAddress(YieldFarmAddress),
	Contract:     YieldFarmPrecompile,
	Configurator: &configurator{},
}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

// Config activates the yield farm at an upgrade timestamp. Omitted schedule
// fields fall back to the compiled-in defaults.
type Config struct {
	Upgrade precompileconfig.Upgrade `json:"upgrade,omitempty"`

	Owner          common.Address `json:"owner,omitempty"`
	LockDuration   uint64         `json:"lockDuration,omitempty"`
	UnlockDuration uint64         `json:"unlockDuration,omitempty"`
	RewardPeriod   uint64         `json:"rewardPeriod,omitempty"`
	LockRate       uint64         `json:"lockRate,omitempty"`
	UnlockRate     uint64         `json:"unlockRate,omitempty"`
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.Owner == other.Owner &&
		c.LockDuration == other.LockDuration &&
		c.UnlockDuration == other.UnlockDuration &&
		c.RewardPeriod == other.RewardPeriod &&
		c.LockRate == other.LockRate &&
		c.UnlockRate == other.UnlockRate
}

func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	if c.LockRate > RateBase {
		return fmt.Errorf("lockRate %d exceeds rate base %d", c.LockRate, RateBase)
	}
	if c.UnlockRate > RateBase {
		return fmt.Errorf("unlockRate %d exceeds rate base %d", c.UnlockRate, RateBase)
	}
	set := c.LockDuration != 0 || c.UnlockDuration != 0 || c.RewardPeriod != 0
	if set {
		if c.LockDuration == 0 || c.UnlockDuration == 0 || c.RewardPeriod == 0 {
			return fmt.Errorf("lockDuration, unlockDuration and rewardPeriod must all be set together")
		}
	}
	return nil
}

// schedule returns the configured schedule, defaulting unset fields.
func (c *Config) schedule() Schedule {
	s := DefaultSchedule()
	if c.LockDuration != 0 {
		s.LockDuration = c.LockDuration
		s.UnlockDuration = c.UnlockDuration
		s.RewardPeriod = c.RewardPeriod
	}
	if c.LockRate != 0 {
		s.LockRate = c.LockRate
	}
	if c.UnlockRate != 0 {
		s.UnlockRate = c.UnlockRate
	}
	return s
}

type configurator struct{}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}

	FarmInstance.mu.Lock()
	FarmInstance.schedule = config.schedule()
	FarmInstance.mu.Unlock()

	if config.Owner != (common.Address{}) {
		FarmInstance.SetOwner(state, config.Owner)
	}
	if !state.Exist(Module.Address) {
		state.CreateAccount(Module.Address)
	}
	return nil
}
