// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state provides a contract.StateDB backed by a key-value database.
// It is used to run the yield precompile off-chain against a real store and
// backs the package tests via memdb.
package state

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
)

// Key prefixes for the three state namespaces.
var (
	storagePrefix = []byte("s/")
	balancePrefix = []byte("b/")
	accountPrefix = []byte("e/")
)

// StateDB implements contract.StateDB over a database.Database.
// It is not safe for concurrent use; callers serialize access the same way
// the EVM serializes transaction execution.
type StateDB struct {
	db database.Database

	blockNumber uint64
	blockTime   uint64
}

// New returns a StateDB reading and writing through db.
func New(db database.Database) *StateDB {
	return &StateDB{db: db}
}

// SetBlockContext sets the block number and timestamp reported to contracts.
func (s *StateDB) SetBlockContext(number, timestamp uint64) {
	s.blockNumber = number
	s.blockTime = timestamp
}

func (s *StateDB) GetBlockNumber() uint64 { return s.blockNumber }

func (s *StateDB) GetBlockTime() uint64 { return s.blockTime }

func storageKey(addr common.Address, key common.Hash) []byte {
	k := make([]byte, 0, len(storagePrefix)+common.AddressLength+common.HashLength)
	k = append(k, storagePrefix...)
	k = append(k, addr.Bytes()...)
	k = append(k, key.Bytes()...)
	return k
}

func balanceKey(addr common.Address) []byte {
	k := make([]byte, 0, len(balancePrefix)+common.AddressLength)
	k = append(k, balancePrefix...)
	k = append(k, addr.Bytes()...)
	return k
}

func accountKey(addr common.Address) []byte {
	k := make([]byte, 0, len(accountPrefix)+common.AddressLength)
	k = append(k, accountPrefix...)
	k = append(k, addr.Bytes()...)
	return k
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	val, err := s.db.Get(storageKey(addr, key))
	if errors.Is(err, database.ErrNotFound) {
		return common.Hash{}
	}
	if err != nil {
		panic(err)
	}
	return common.BytesToHash(val)
}

func (s *StateDB) SetState(addr common.Address, key common.Hash, value common.Hash) {
	if err := s.db.Put(storageKey(addr, key), value.Bytes()); err != nil {
		panic(err)
	}
}

func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	val, err := s.db.Get(balanceKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return uint256.NewInt(0)
	}
	if err != nil {
		panic(err)
	}
	return new(uint256.Int).SetBytes(val)
}

// SetBalance overwrites addr's balance. Used to seed test fixtures.
func (s *StateDB) SetBalance(addr common.Address, amount *uint256.Int) {
	b := amount.Bytes32()
	if err := s.db.Put(balanceKey(addr), b[:]); err != nil {
		panic(err)
	}
}

func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int) {
	balance := s.GetBalance(addr)
	balance.Add(balance, amount)
	s.SetBalance(addr, balance)
}

func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int) {
	balance := s.GetBalance(addr)
	if balance.Lt(amount) {
		panic("state: balance underflow")
	}
	balance.Sub(balance, amount)
	s.SetBalance(addr, balance)
}

func (s *StateDB) Exist(addr common.Address) bool {
	ok, err := s.db.Has(accountKey(addr))
	if err != nil {
		panic(err)
	}
	return ok
}

func (s *StateDB) CreateAccount(addr common.Address) {
	if err := s.db.Put(accountKey(addr), []byte{1}); err != nil {
		panic(err)
	}
}
