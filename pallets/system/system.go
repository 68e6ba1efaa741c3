// Package system owns chain bookkeeping: the current block number and
// the per-account nonce.
package system

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/duylongpro99/rsm"
	"github.com/duylongpro99/rsm/support"
)

// ModuleName identifies this pallet in diagnostics.
const ModuleName = "system"

// Pallet stores the block number and nonces. Absent accounts have
// nonce zero.
type Pallet[A cmp.Ordered, BN support.Counter, N support.Counter] struct {
	blockNumber BN
	nonces      map[A]N
}

// New creates a system pallet at block zero.
func New[A cmp.Ordered, BN support.Counter, N support.Counter]() *Pallet[A, BN, N] {
	return &Pallet[A, BN, N]{nonces: make(map[A]N)}
}

// BlockNumber returns the number of the last block started.
func (p *Pallet[A, BN, N]) BlockNumber() BN {
	return p.blockNumber
}

// SetBlockNumber overwrites the block number. It is meant for genesis
// and administration only.
func (p *Pallet[A, BN, N]) SetBlockNumber(bn BN) {
	p.blockNumber = bn
}

// IncBlockNumber advances the block number by one.
//
// Panics with *rsm.HaltError if the block number would overflow.
func (p *Pallet[A, BN, N]) IncBlockNumber() {
	next, ok := support.CheckedAdd(p.blockNumber, 1)
	if !ok {
		panic(rsm.NewHaltError(uint64(p.blockNumber), "block number overflow"))
	}
	p.blockNumber = next
}

// Nonce returns the number of extrinsics account has authored.
func (p *Pallet[A, BN, N]) Nonce(account A) N {
	return p.nonces[account]
}

// IncNonce increments the nonce of account by one.
//
// Panics with *rsm.HaltError if the nonce would overflow.
func (p *Pallet[A, BN, N]) IncNonce(account A) {
	next, ok := support.CheckedAdd(p.nonces[account], 1)
	if !ok {
		panic(rsm.NewHaltError(uint64(p.blockNumber), fmt.Sprintf("nonce overflow for account %v", account)))
	}
	p.nonces[account] = next
}

// Each calls fn for every account with a stored nonce, in ascending
// account order.
func (p *Pallet[A, BN, N]) Each(fn func(account A, nonce N)) {
	for _, account := range slices.Sorted(maps.Keys(p.nonces)) {
		fn(account, p.nonces[account])
	}
}

// Clone returns an independent copy of the pallet.
func (p *Pallet[A, BN, N]) Clone() *Pallet[A, BN, N] {
	return &Pallet[A, BN, N]{
		blockNumber: p.blockNumber,
		nonces:      maps.Clone(p.nonces),
	}
}
