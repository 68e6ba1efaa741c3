// Package local provides a zero-copy, in-process runtime connection.
//
// For hosts compiled into the same binary as their driver, this
// adapter wraps the host with lifecycle state machine enforcement and
// capability discovery, with no serialization overhead.
package local

import (
	"context"

	"github.com/duylongpro99/rsm"
	"github.com/duylongpro99/rsm/server"
	"github.com/duylongpro99/rsm/types"
)

// Compile-time interface check.
var _ rsm.Connection = (*Connection)(nil)

// Connection wraps a local Lifecycle implementation with lifecycle
// enforcement and capability discovery.
type Connection struct {
	srv *server.Server
}

// NewConnection creates an in-process connection wrapping the given
// host.
func NewConnection(app rsm.Lifecycle, opts ...server.Option) *Connection {
	return &Connection{srv: server.New(app, opts...)}
}

func (c *Connection) Handshake(ctx context.Context, req types.HandshakeRequest) (types.HandshakeResponse, error) {
	return c.srv.Handshake(ctx, req)
}

func (c *Connection) CheckTx(ctx context.Context, tx types.Tx, mctx types.MempoolContext) (types.GateVerdict, error) {
	return c.srv.CheckTx(ctx, tx, mctx)
}

func (c *Connection) ExecuteBlock(ctx context.Context, block types.FinalizedBlock) (types.BlockOutcome, error) {
	return c.srv.ExecuteBlock(ctx, block)
}

func (c *Connection) Commit(ctx context.Context) (types.CommitResult, error) {
	return c.srv.Commit(ctx)
}

func (c *Connection) Query(ctx context.Context, req types.StateQuery) (types.StateQueryResult, error) {
	return c.srv.Query(ctx, req)
}

func (c *Connection) Capabilities() types.Capabilities {
	return c.srv.Capabilities()
}

// AsSimulator returns a Simulator that goes through the server's
// handshake gating, or nil if simulation was not declared.
func (c *Connection) AsSimulator() rsm.Simulator {
	if c.srv.AsSimulator() == nil {
		return nil
	}
	return c.srv
}

func (c *Connection) Close() error { return c.srv.Close() }

// Server returns the underlying server for advanced use cases.
func (c *Connection) Server() *server.Server {
	return c.srv
}
