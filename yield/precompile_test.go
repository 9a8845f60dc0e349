// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/cloudwalk/smart-yield/contract"
	"github.com/cloudwalk/smart-yield/state"
)

type testAccessibleState struct {
	db contract.StateDB
}

func (s testAccessibleState) GetStateDB() contract.StateDB { return s.db }

func newPrecompileState(t *testing.T) (testAccessibleState, *state.StateDB) {
	t.Helper()
	db := state.New(memdb.New())
	db.SetBalance(userAddr, uint256.NewInt(1_000_000))
	db.SetBalance(farmAddr, uint256.NewInt(10_000_000))
	return testAccessibleState{db: db}, db
}

func packInput(selector [4]byte, words ...[]byte) []byte {
	input := append([]byte{}, selector[:]...)
	for _, w := range words {
		var word [32]byte
		copy(word[32-len(w):], w)
		input = append(input, word[:]...)
	}
	return input
}

func addressWord(addr common.Address) []byte { return addr.Bytes() }

func amountWord(v int64) []byte { return big.NewInt(v).Bytes() }

func TestRunDepositAndGetAccount(t *testing.T) {
	as, db := newPrecompileState(t)
	db.SetBlockContext(1, 0)

	const gas = 100_000
	ret, remaining, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorDeposit, amountWord(10000)), gas, false)
	require.NoError(t, err)
	require.Empty(t, ret)
	require.Equal(t, uint64(gas-GasDeposit), remaining)

	db.SetBlockContext(2, 45*Day)
	ret, remaining, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorGetAccount, addressWord(userAddr)), gas, true)
	require.NoError(t, err)
	require.Equal(t, uint64(gas-GasQuery), remaining)
	require.Len(t, ret, 8*32)

	// exists, balance, lockEarnings, unlockEarnings, anchor, nextLockAt,
	// nextUnlockAt, phase
	require.EqualValues(t, 1, new(big.Int).SetBytes(ret[0:32]).Int64())
	require.EqualValues(t, 10000, new(big.Int).SetBytes(ret[32:64]).Int64())
	require.EqualValues(t, 300, new(big.Int).SetBytes(ret[64:96]).Int64())
	require.EqualValues(t, 5, new(big.Int).SetBytes(ret[96:128]).Int64())
	require.EqualValues(t, 0, new(big.Int).SetBytes(ret[128:160]).Int64())
	require.EqualValues(t, 60*Day, new(big.Int).SetBytes(ret[160:192]).Uint64())
	require.EqualValues(t, 90*Day, new(big.Int).SetBytes(ret[192:224]).Uint64())
	require.EqualValues(t, uint64(PhaseUnlocked), new(big.Int).SetBytes(ret[224:256]).Uint64())
}

func TestRunWithdrawRoundTrip(t *testing.T) {
	as, db := newPrecompileState(t)
	db.SetBlockContext(1, 0)

	const gas = 100_000
	_, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorDeposit, amountWord(10000)), gas, false)
	require.NoError(t, err)
	walletAfterDeposit := db.GetBalance(userAddr).Uint64()

	db.SetBlockContext(2, 45*Day)
	_, _, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorWithdraw, amountWord(10000)), gas, false)
	require.NoError(t, err)
	require.Equal(t, walletAfterDeposit+10305, db.GetBalance(userAddr).Uint64())

	ret, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorTotalBalance), gas, true)
	require.NoError(t, err)
	require.Zero(t, new(big.Int).SetBytes(ret).Sign())
}

func TestRunReadOnlyRejectsMutations(t *testing.T) {
	as, db := newPrecompileState(t)
	db.SetBlockContext(1, 0)

	const gas = 100_000
	for _, input := range [][]byte{
		packInput(SelectorDeposit, amountWord(1)),
		packInput(SelectorWithdraw, amountWord(1)),
		packInput(SelectorWithdrawAll),
		packInput(SelectorExitAll),
		packInput(SelectorTransfer, addressWord(otherAddr)),
		packInput(SelectorPause),
		packInput(SelectorUnpause),
	} {
		_, _, err := YieldFarmPrecompile.Run(as, userAddr, farmAddr, input, gas, true)
		require.ErrorIs(t, err, ErrReadOnly)
	}
}

func TestRunInsufficientGas(t *testing.T) {
	as, _ := newPrecompileState(t)

	_, remaining, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorDeposit, amountWord(1)), GasDeposit-1, false)
	require.ErrorIs(t, err, ErrInsufficientGas)
	require.Zero(t, remaining)
}

func TestRunInvalidInput(t *testing.T) {
	as, _ := newPrecompileState(t)
	const gas = 100_000

	// Too short for a selector.
	_, _, err := YieldFarmPrecompile.Run(as, userAddr, farmAddr, []byte{0x01, 0x02}, gas, false)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Unknown selector.
	_, _, err = YieldFarmPrecompile.Run(as, userAddr, farmAddr, []byte{0xde, 0xad, 0xbe, 0xef}, gas, false)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Selector with truncated argument.
	_, _, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, append(SelectorDeposit[:], 0x01), gas, false)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunPauseFlow(t *testing.T) {
	as, db := newPrecompileState(t)
	db.SetBlockContext(1, 0)
	FarmInstance.SetOwner(db, ownerAddr)

	const gas = 100_000
	_, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorPause), gas, false)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = YieldFarmPrecompile.Run(
		as, ownerAddr, farmAddr, packInput(SelectorPause), gas, false)
	require.NoError(t, err)

	ret, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorPaused), gas, true)
	require.NoError(t, err)
	require.EqualValues(t, 1, ret[31])

	_, _, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorDeposit, amountWord(1)), gas, false)
	require.ErrorIs(t, err, ErrPaused)

	_, _, err = YieldFarmPrecompile.Run(
		as, ownerAddr, farmAddr, packInput(SelectorUnpause), gas, false)
	require.NoError(t, err)

	ret, _, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorOwner), gas, true)
	require.NoError(t, err)
	require.Equal(t, ownerAddr, common.BytesToAddress(ret[12:]))
}

func TestRunTransfer(t *testing.T) {
	as, db := newPrecompileState(t)
	db.SetBlockContext(1, 0)

	const gas = 100_000
	_, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorDeposit, amountWord(10000)), gas, false)
	require.NoError(t, err)

	_, _, err = YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorTransfer, addressWord(otherAddr)), gas, false)
	require.NoError(t, err)

	ret, _, err := YieldFarmPrecompile.Run(
		as, userAddr, farmAddr, packInput(SelectorGetAccount, addressWord(otherAddr)), gas, true)
	require.NoError(t, err)
	require.EqualValues(t, 10000, new(big.Int).SetBytes(ret[32:64]).Int64())
}
