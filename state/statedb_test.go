// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var (
	addrA = common.HexToAddress("0x0000000000000000000000000000000000000aaa")
	addrB = common.HexToAddress("0x0000000000000000000000000000000000000bbb")
)

func TestStateRoundTrip(t *testing.T) {
	s := New(memdb.New())

	key := common.HexToHash("0x01")
	require.Equal(t, common.Hash{}, s.GetState(addrA, key))

	val := common.HexToHash("0xdeadbeef")
	s.SetState(addrA, key, val)
	require.Equal(t, val, s.GetState(addrA, key))

	// Same key under another address is independent.
	require.Equal(t, common.Hash{}, s.GetState(addrB, key))
}

func TestBalances(t *testing.T) {
	s := New(memdb.New())

	require.True(t, s.GetBalance(addrA).IsZero())

	s.AddBalance(addrA, uint256.NewInt(100))
	s.AddBalance(addrA, uint256.NewInt(50))
	require.EqualValues(t, 150, s.GetBalance(addrA).Uint64())

	s.SubBalance(addrA, uint256.NewInt(120))
	require.EqualValues(t, 30, s.GetBalance(addrA).Uint64())

	require.Panics(t, func() {
		s.SubBalance(addrA, uint256.NewInt(31))
	})
	require.EqualValues(t, 30, s.GetBalance(addrA).Uint64())
}

func TestExistCreateAccount(t *testing.T) {
	s := New(memdb.New())

	require.False(t, s.Exist(addrA))
	s.CreateAccount(addrA)
	require.True(t, s.Exist(addrA))
	require.False(t, s.Exist(addrB))
}

func TestBlockContext(t *testing.T) {
	s := New(memdb.New())

	require.Zero(t, s.GetBlockNumber())
	require.Zero(t, s.GetBlockTime())

	s.SetBlockContext(42, 1_700_000_000)
	require.EqualValues(t, 42, s.GetBlockNumber())
	require.EqualValues(t, 1_700_000_000, s.GetBlockTime())
}
