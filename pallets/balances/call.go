package balances

import (
	"cmp"

	"github.com/duylongpro99/rsm/support"
)

// Call is the closed set of balances operations a caller can dispatch.
// Variants are defined in this package only; each must implement apply.
type Call[A cmp.Ordered, B support.Amount[B]] interface {
	Name() string
	apply(p *Pallet[A, B], caller A) error
}

// TransferCall moves Amount from the caller to To.
type TransferCall[A cmp.Ordered, B support.Amount[B]] struct {
	To     A
	Amount B
}

func (TransferCall[A, B]) Name() string { return "transfer" }

func (c TransferCall[A, B]) apply(p *Pallet[A, B], caller A) error {
	return p.Transfer(caller, c.To, c.Amount)
}

// Dispatch executes call on behalf of caller.
func (p *Pallet[A, B]) Dispatch(caller A, call Call[A, B]) error {
	return call.apply(p, caller)
}

var _ support.Dispatch[string, Call[string, support.U64]] = (*Pallet[string, support.U64])(nil)
