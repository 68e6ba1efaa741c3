package claims

import (
	"cmp"

	"github.com/duylongpro99/rsm/support"
)

// Call is the closed set of claim operations a caller can dispatch.
// Variants are defined in this package only; each must implement apply.
type Call[A cmp.Ordered, C cmp.Ordered] interface {
	Name() string
	apply(p *Pallet[A, C], caller A) error
}

// CreateClaimCall claims Content for the caller.
type CreateClaimCall[A cmp.Ordered, C cmp.Ordered] struct {
	Content C
}

func (CreateClaimCall[A, C]) Name() string { return "create_claim" }

func (c CreateClaimCall[A, C]) apply(p *Pallet[A, C], caller A) error {
	return p.CreateClaim(caller, c.Content)
}

// RevokeClaimCall releases the caller's claim on Content.
type RevokeClaimCall[A cmp.Ordered, C cmp.Ordered] struct {
	Content C
}

func (RevokeClaimCall[A, C]) Name() string { return "revoke_claim" }

func (c RevokeClaimCall[A, C]) apply(p *Pallet[A, C], caller A) error {
	return p.RevokeClaim(caller, c.Content)
}

// Dispatch executes call on behalf of caller.
func (p *Pallet[A, C]) Dispatch(caller A, call Call[A, C]) error {
	return call.apply(p, caller)
}

var _ support.Dispatch[string, Call[string, string]] = (*Pallet[string, string])(nil)
