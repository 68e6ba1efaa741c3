// Package runtime composes the pallets into a single state machine and
// executes blocks against it.
//
// A Runtime is the only owner of mutable state. It does no locking:
// callers that share one across goroutines must serialize ExecuteBlock
// themselves.
package runtime

import (
	"cmp"

	"github.com/rs/zerolog"

	"github.com/duylongpro99/rsm/pallets/balances"
	"github.com/duylongpro99/rsm/pallets/claims"
	"github.com/duylongpro99/rsm/pallets/system"
	"github.com/duylongpro99/rsm/support"
)

// Runtime owns one instance of each pallet.
//
// Type parameters: A account identifier, B balance, BN block number,
// N nonce, C claim content.
type Runtime[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] struct {
	System   *system.Pallet[A, BN, N]
	Balances *balances.Pallet[A, B]
	Claims   *claims.Pallet[A, C]

	logger zerolog.Logger
}

type options struct {
	logger zerolog.Logger
}

// Option configures a Runtime.
type Option func(*options)

// WithLogger sets the logger extrinsic failures are reported to.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a runtime at block zero with empty state.
func New[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered](opts ...Option) *Runtime[A, B, BN, N, C] {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runtime[A, B, BN, N, C]{
		System:   system.New[A, BN, N](),
		Balances: balances.New[A, B](),
		Claims:   claims.New[A, C](),
		logger:   o.logger.With().Str("component", "runtime").Logger(),
	}
}

// Clone returns a runtime with an independent copy of all state.
func (rt *Runtime[A, B, BN, N, C]) Clone() *Runtime[A, B, BN, N, C] {
	return &Runtime[A, B, BN, N, C]{
		System:   rt.System.Clone(),
		Balances: rt.Balances.Clone(),
		Claims:   rt.Claims.Clone(),
		logger:   rt.logger,
	}
}
