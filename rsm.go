// Package rsm is a minimal deterministic runtime state machine for a
// ledger: balances, per-account nonces, a block counter and a claim
// registry, advanced by executing ordered blocks of extrinsics.
//
// The runtime core lives in the support, pallets and runtime packages.
// This package defines the host-facing boundary: the [Lifecycle] an
// embedding process drives, and the optional [Simulator] capability
// discovered via Go type assertion at handshake time.
package rsm

import (
	"context"

	"github.com/duylongpro99/rsm/types"
)

// Lifecycle is the interface every runtime host must implement.
//
// The server guarantees the following call order:
//  1. Handshake is called exactly once, before anything else.
//  2. ExecuteBlock is called once per block, in block-number order.
//  3. Commit is called exactly once after each successful ExecuteBlock.
//  4. CheckTx, Query may be called concurrently at any time after Handshake.
//
// Implementations must not assume internal synchronization beyond
// this ordering; the runtime itself is single-writer.
type Lifecycle interface {
	// Handshake is called once on every startup.
	//
	// If LastCommitted is nil the chain is fresh and Genesis carries
	// the bootstrap balances. Otherwise the application reports its own
	// view of the last committed block.
	Handshake(ctx context.Context, req types.HandshakeRequest) (types.HandshakeResponse, error)

	// CheckTx decodes a transaction without executing it.
	//
	// This method MUST be safe for concurrent use.
	CheckTx(ctx context.Context, tx types.Tx, mctx types.MempoolContext) (types.GateVerdict, error)

	// ExecuteBlock advances the runtime by one block.
	//
	// The block counter advances even if the declared height turns out
	// to be wrong; in that case an error is returned and no transaction
	// runs. Individual transaction failures never fail the block; they
	// are reported in the returned BlockOutcome.
	ExecuteBlock(ctx context.Context, block types.FinalizedBlock) (types.BlockOutcome, error)

	// Commit records the last executed block as committed and returns
	// its height and app hash. Query reads live runtime state, so the
	// effects of ExecuteBlock are visible before Commit. Nothing is
	// written to disk.
	Commit(ctx context.Context) (types.CommitResult, error)

	// Query reads runtime state.
	//
	// This method MUST be safe for concurrent use.
	Query(ctx context.Context, req types.StateQuery) (types.StateQueryResult, error)
}

// Simulator dry-runs a transaction against a copy of the current
// state. Nothing it does is visible afterwards, including the nonce
// increment.
//
// Declared via: types.CapSimulation in HandshakeResponse.Capabilities
type Simulator interface {
	// This method MUST be safe for concurrent use.
	Simulate(ctx context.Context, tx types.Tx) (types.TxOutcome, error)
}

// Application is a convenience interface for hosts that support
// every capability.
type Application interface {
	Lifecycle
	Simulator
}

// Connection represents a connection to a runtime host. The in-process
// adapter in package local implements it.
type Connection interface {
	Lifecycle

	// Capabilities returns the capabilities discovered at handshake.
	// Must only be called after Handshake completes.
	Capabilities() types.Capabilities

	// AsSimulator returns the Simulator interface if available.
	AsSimulator() Simulator

	// Close terminates the connection.
	Close() error
}
