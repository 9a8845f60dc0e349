// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

import (
	"math/big"

	"github.com/luxfi/geth/common"
)

// AccountChangedEvent is emitted on every account mutation, carrying the
// old and new values for audit consumers.
type AccountChangedEvent struct {
	User          common.Address
	NewBalance    *big.Int
	OldBalance    *big.Int
	NewAnchorTime uint64
	OldAnchorTime uint64
}

// ReplenishedEvent is emitted on every successful deposit.
type ReplenishedEvent struct {
	User     common.Address
	Amount   *big.Int
	Earnings *big.Int
}

// WithdrawnEvent is emitted on every successful withdrawal or exit.
// Earnings is zero for exits.
type WithdrawnEvent struct {
	User     common.Address
	Amount   *big.Int
	Earnings *big.Int
}

// TransferredEvent is emitted when an account moves to a new address.
// Balance and AnchorTime are the values moved to the recipient.
type TransferredEvent struct {
	From       common.Address
	To         common.Address
	Balance    *big.Int
	AnchorTime uint64
}

// EventSink receives the records emitted by the farm. Implementations must
// not mutate ledger state.
type EventSink interface {
	AccountChanged(ev AccountChangedEvent)
	Replenished(ev ReplenishedEvent)
	Withdrawn(ev WithdrawnEvent)
	Transferred(ev TransferredEvent)
}

// NopSink discards all events.
var NopSink EventSink = nopSink{}

type nopSink struct{}

func (nopSink) AccountChanged(AccountChangedEvent) {}
func (nopSink) Replenished(ReplenishedEvent)       {}
func (nopSink) Withdrawn(WithdrawnEvent)           {}
func (nopSink) Transferred(TransferredEvent)       {}

// MemorySink records all events in order. Used by tests and indexers.
type MemorySink struct {
	AccountChanges []AccountChangedEvent
	Replenishes    []ReplenishedEvent
	Withdrawals    []WithdrawnEvent
	Transfers      []TransferredEvent
}

func (m *MemorySink) AccountChanged(ev AccountChangedEvent) {
	m.AccountChanges = append(m.AccountChanges, ev)
}

func (m *MemorySink) Replenished(ev ReplenishedEvent) {
	m.Replenishes = append(m.Replenishes, ev)
}

func (m *MemorySink) Withdrawn(ev WithdrawnEvent) {
	m.Withdrawals = append(m.Withdrawals, ev)
}

func (m *MemorySink) Transferred(ev TransferredEvent) {
	m.Transfers = append(m.Transfers, ev)
}
