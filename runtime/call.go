package runtime

import (
	"cmp"
	"errors"

	"github.com/duylongpro99/rsm/pallets/balances"
	"github.com/duylongpro99/rsm/pallets/claims"
	"github.com/duylongpro99/rsm/support"
)

// ErrNilCall is returned when an extrinsic carries no call.
var ErrNilCall = errors.New("runtime: nil call")

// Call is the closed set of runtime calls, one variant per pallet.
// The unexported dispatch method makes every variant route itself, so
// a variant without a route does not compile.
type Call[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] interface {
	// Module is the name of the pallet the call is routed to.
	Module() string
	// Name is the pallet-level operation name.
	Name() string

	dispatch(rt *Runtime[A, B, BN, N, C], caller A) error
}

// BalancesCall routes a balances call.
type BalancesCall[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] struct {
	Call balances.Call[A, B]
}

func (BalancesCall[A, B, BN, N, C]) Module() string { return balances.ModuleName }

func (c BalancesCall[A, B, BN, N, C]) Name() string {
	if c.Call == nil {
		return ""
	}
	return c.Call.Name()
}

func (c BalancesCall[A, B, BN, N, C]) dispatch(rt *Runtime[A, B, BN, N, C], caller A) error {
	if c.Call == nil {
		return ErrNilCall
	}
	return rt.Balances.Dispatch(caller, c.Call)
}

// ClaimsCall routes a claims call.
type ClaimsCall[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] struct {
	Call claims.Call[A, C]
}

func (ClaimsCall[A, B, BN, N, C]) Module() string { return claims.ModuleName }

func (c ClaimsCall[A, B, BN, N, C]) Name() string {
	if c.Call == nil {
		return ""
	}
	return c.Call.Name()
}

func (c ClaimsCall[A, B, BN, N, C]) dispatch(rt *Runtime[A, B, BN, N, C], caller A) error {
	if c.Call == nil {
		return ErrNilCall
	}
	return rt.Claims.Dispatch(caller, c.Call)
}

// Dispatch routes call to its pallet on behalf of caller and returns
// the pallet's error unchanged.
func (rt *Runtime[A, B, BN, N, C]) Dispatch(caller A, call Call[A, B, BN, N, C]) error {
	if call == nil {
		return ErrNilCall
	}
	return call.dispatch(rt, caller)
}
