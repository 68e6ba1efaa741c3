// Package balances owns the account → balance map and the checked
// transfer between accounts.
package balances

import (
	"cmp"
	"errors"
	"maps"
	"slices"

	"github.com/duylongpro99/rsm/support"
)

// ModuleName identifies this pallet in diagnostics.
const ModuleName = "balances"

var (
	ErrInsufficientFunds = errors.New("balances: insufficient funds")
	ErrBalanceOverflow   = errors.New("balances: balance overflow")
)

// Pallet stores balances. Absent accounts hold zero.
type Pallet[A cmp.Ordered, B support.Amount[B]] struct {
	balances map[A]B
}

// New creates an empty balances pallet.
func New[A cmp.Ordered, B support.Amount[B]]() *Pallet[A, B] {
	return &Pallet[A, B]{balances: make(map[A]B)}
}

// Balance returns the stored balance, or zero.
func (p *Pallet[A, B]) Balance(account A) B {
	return p.balances[account]
}

// SetBalance overwrites the balance of account. It performs no
// validation and is meant for genesis and administration only.
func (p *Pallet[A, B]) SetBalance(account A, amount B) {
	p.balances[account] = amount
}

// Transfer moves amount from one account to another. On error no
// balance is changed.
//
// The credit is computed against the already-debited sender balance
// when from == to, so a self transfer succeeds iff the account can
// cover amount and leaves it unchanged.
func (p *Pallet[A, B]) Transfer(from, to A, amount B) error {
	newFrom, ok := p.Balance(from).CheckedSub(amount)
	if !ok {
		return ErrInsufficientFunds
	}

	toBalance := p.Balance(to)
	if to == from {
		toBalance = newFrom
	}
	newTo, ok := toBalance.CheckedAdd(amount)
	if !ok {
		return ErrBalanceOverflow
	}

	p.balances[from] = newFrom
	p.balances[to] = newTo
	return nil
}

// Each calls fn for every stored account in ascending account order.
func (p *Pallet[A, B]) Each(fn func(account A, balance B)) {
	for _, account := range slices.Sorted(maps.Keys(p.balances)) {
		fn(account, p.balances[account])
	}
}

// Clone returns an independent copy of the pallet.
func (p *Pallet[A, B]) Clone() *Pallet[A, B] {
	return &Pallet[A, B]{balances: maps.Clone(p.balances)}
}
