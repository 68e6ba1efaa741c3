// Package app composes the runtime with concrete types and exposes it
// to a host through the rsm lifecycle.
//
// Transaction format: the cramberry encoding of a types.Extrinsic, a
// caller plus a call envelope whose Kind selects the variant. Balances
// are 256-bit; block numbers and nonces are 32-bit.
//
// Query paths:
//
//	/balance       Data = account        Value = [32]big-endian amount
//	/nonce         Data = account        Value = [8]big-endian nonce
//	/claim         Data = content        Value = owner
//	/block_number                        Value = [8]big-endian number
//	/block_time                          Value = cramberry Timestamp
//	/state                               Value = cramberry StateSnapshot
package app

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/rs/zerolog"

	"github.com/duylongpro99/rsm"
	"github.com/duylongpro99/rsm/runtime"
	"github.com/duylongpro99/rsm/support"
	"github.com/duylongpro99/rsm/types"
)

// Compile-time interface checks.
var (
	_ rsm.Lifecycle = (*App)(nil)
	_ rsm.Simulator = (*App)(nil)
)

// App owns one Runtime. Its mutex serializes every access to it.
type App struct {
	mu     sync.RWMutex
	rt     *Runtime
	logger zerolog.Logger

	chainID string
	// Time of the last executed block, or the genesis time before the
	// first block. Host metadata only; it is not part of the app hash.
	blockTime types.Timestamp

	// Last block executed, awaiting Commit.
	executed types.BlockID
	// Last block committed.
	committed types.BlockID
}

type options struct {
	logger zerolog.Logger
}

// Option configures an App.
type Option func(*options)

// WithLogger sets the logger passed down to the runtime.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an application with an empty runtime at block zero.
func New(opts ...Option) *App {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &App{
		rt:     NewRuntime(runtime.WithLogger(o.logger)),
		logger: o.logger.With().Str("component", "app").Logger(),
	}
}

func (app *App) Handshake(_ context.Context, req types.HandshakeRequest) (types.HandshakeResponse, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if req.LastCommitted == nil {
		// Genesis.
		if req.Genesis != nil {
			if err := app.applyGenesis(*req.Genesis); err != nil {
				return types.HandshakeResponse{}, err
			}
		}
		h := app.appHash()
		app.committed = types.BlockID{AppHash: h}
		return types.HandshakeResponse{
			AppHash:      &h,
			Capabilities: types.CapSimulation,
		}, nil
	}
	// Restart: nothing is persisted, so report our own view.
	last := app.committed
	return types.HandshakeResponse{
		LastBlock:    &last,
		AppHash:      &last.AppHash,
		Capabilities: types.CapSimulation,
	}, nil
}

func (app *App) applyGenesis(doc types.GenesisDoc) error {
	seen := make(map[AccountID]bool, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		if acc.Address == "" {
			return errors.New("genesis: empty account address")
		}
		if seen[acc.Address] {
			return fmt.Errorf("genesis: duplicate account %q", acc.Address)
		}
		seen[acc.Address] = true
		app.rt.Balances.SetBalance(acc.Address, BalanceFromAmount(acc.Balance))
	}
	app.chainID = doc.ChainID
	app.blockTime = doc.GenesisTime
	app.logger.Info().
		Str("chain_id", doc.ChainID).
		Int("accounts", len(doc.Accounts)).
		Msg("Genesis applied")
	return nil
}

func (app *App) CheckTx(_ context.Context, tx types.Tx, _ types.MempoolContext) (types.GateVerdict, error) {
	ext, err := DecodeExtrinsic(tx)
	if err != nil {
		return types.GateVerdict{Code: types.CodeDecode, Info: err.Error()}, nil
	}
	return types.GateVerdict{
		Code:   types.CodeOK,
		Sender: ext.Caller,
		Module: ext.Call.Module(),
	}, nil
}

func (app *App) ExecuteBlock(_ context.Context, block types.FinalizedBlock) (types.BlockOutcome, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	outcomes := make([]types.TxOutcome, len(block.Txs))
	exts := make([]Extrinsic, 0, len(block.Txs))
	positions := make([]int, 0, len(block.Txs))

	for i, tx := range block.Txs {
		ext, err := DecodeExtrinsic(tx)
		if err != nil {
			outcomes[i] = types.TxOutcome{
				Index: uint32(i),
				Code:  types.CodeDecode,
				Info:  err.Error(),
			}
			continue
		}
		exts = append(exts, ext)
		positions = append(positions, i)
	}

	results, err := app.execute(Block{
		Header:     support.Header[BlockNumber]{BlockNumber: blockNumber(block.Height)},
		Extrinsics: exts,
	})
	if err != nil {
		return types.BlockOutcome{}, fmt.Errorf("execute block %d: %w", block.Height, err)
	}

	for j, res := range results {
		i := positions[j]
		out := types.TxOutcome{
			Index:  uint32(i),
			Module: res.Module,
		}
		if res.OK() {
			out.Code = types.CodeOK
			out.Events = []types.Event{callEvent(exts[j])}
		} else {
			out.Code = types.CodeDispatch
			out.Info = res.Err.Error()
		}
		outcomes[i] = out
	}

	h := app.appHash()
	app.executed = types.BlockID{Height: block.Height, AppHash: h}
	app.blockTime = block.Time

	return types.BlockOutcome{
		TxOutcomes: outcomes,
		AppHash:    h,
	}, nil
}

// execute runs the block, converting a halting panic into an error.
func (app *App) execute(b Block) (results []Result, err error) {
	defer func() {
		if h := rsm.RecoverHalt(recover()); h != nil {
			results, err = nil, h
		}
	}()
	return app.rt.ExecuteBlock(b)
}

// blockNumber narrows a host height to the runtime's block number.
// Heights that do not fit map to zero, which never matches an
// advanced counter.
func blockNumber(height uint64) BlockNumber {
	if height > math.MaxUint32 {
		return 0
	}
	return BlockNumber(height)
}

func (app *App) Commit(_ context.Context) (types.CommitResult, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.committed = app.executed
	return types.CommitResult{
		Height:  app.committed.Height,
		AppHash: app.committed.AppHash,
	}, nil
}

func (app *App) Query(_ context.Context, req types.StateQuery) (types.StateQueryResult, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	height := uint64(app.rt.System.BlockNumber())

	switch req.Path {
	case types.QueryBalance:
		if len(req.Data) == 0 {
			return types.StateQueryResult{Code: 1, Info: "data must be an account", Height: height}, nil
		}
		bal := app.rt.Balances.Balance(string(req.Data)).Amount()
		return types.StateQueryResult{Key: req.Data, Value: bal[:], Height: height}, nil

	case types.QueryNonce:
		if len(req.Data) == 0 {
			return types.StateQueryResult{Code: 1, Info: "data must be an account", Height: height}, nil
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(app.rt.System.Nonce(string(req.Data))))
		return types.StateQueryResult{Key: req.Data, Value: buf, Height: height}, nil

	case types.QueryClaim:
		owner, ok := app.rt.Claims.Claim(string(req.Data))
		if !ok {
			return types.StateQueryResult{Code: 1, Key: req.Data, Info: "claim not found", Height: height}, nil
		}
		return types.StateQueryResult{Key: req.Data, Value: []byte(owner), Height: height}, nil

	case types.QueryBlockNumber:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, height)
		return types.StateQueryResult{Value: buf, Height: height}, nil

	case types.QueryBlockTime:
		data, err := cramberry.Marshal(app.blockTime)
		if err != nil {
			return types.StateQueryResult{}, fmt.Errorf("marshal block time: %w", err)
		}
		return types.StateQueryResult{Value: data, Height: height}, nil

	case types.QueryState:
		data, err := cramberry.Marshal(app.snapshot())
		if err != nil {
			return types.StateQueryResult{}, fmt.Errorf("marshal state: %w", err)
		}
		return types.StateQueryResult{Value: data, Height: height}, nil

	default:
		return types.StateQueryResult{Code: 1, Info: "unknown query path", Height: height}, nil
	}
}

// Simulate dispatches tx against a copy of the runtime.
func (app *App) Simulate(_ context.Context, tx types.Tx) (out types.TxOutcome, err error) {
	ext, err := DecodeExtrinsic(tx)
	if err != nil {
		return types.TxOutcome{Code: types.CodeDecode, Info: err.Error()}, nil
	}

	app.mu.RLock()
	rt := app.rt.Clone()
	app.mu.RUnlock()

	defer func() {
		if h := rsm.RecoverHalt(recover()); h != nil {
			out, err = types.TxOutcome{}, h
		}
	}()

	rt.System.IncNonce(ext.Caller)
	out = types.TxOutcome{Module: ext.Call.Module()}
	if derr := rt.Dispatch(ext.Caller, ext.Call); derr != nil {
		out.Code = types.CodeDispatch
		out.Info = derr.Error()
		return out, nil
	}
	out.Events = []types.Event{callEvent(ext)}
	return out, nil
}

// ChainID returns the chain id taken from genesis.
func (app *App) ChainID() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.chainID
}

// Balance returns the balance of account.
func (app *App) Balance(account AccountID) Balance {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.rt.Balances.Balance(account)
}

// Nonce returns the nonce of account.
func (app *App) Nonce(account AccountID) Nonce {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.rt.System.Nonce(account)
}

// BlockNumber returns the runtime's block number.
func (app *App) BlockNumber() BlockNumber {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.rt.System.BlockNumber()
}

// BlockTime returns the time of the last executed block, or the
// genesis time before the first block.
func (app *App) BlockTime() time.Time {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.blockTime.ToTime()
}

// Claim returns the owner of content, if claimed.
func (app *App) Claim(content Content) (AccountID, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.rt.Claims.Claim(content)
}

// snapshot captures the runtime state in canonical order.
func (app *App) snapshot() types.StateSnapshot {
	accounts := make(map[AccountID]*types.AccountState)
	entry := func(a AccountID) *types.AccountState {
		s, ok := accounts[a]
		if !ok {
			s = &types.AccountState{Address: a}
			accounts[a] = s
		}
		return s
	}
	app.rt.Balances.Each(func(a AccountID, b Balance) { entry(a).Balance = b.Amount() })
	app.rt.System.Each(func(a AccountID, n Nonce) { entry(a).Nonce = uint64(n) })

	snap := types.StateSnapshot{BlockNumber: uint64(app.rt.System.BlockNumber())}
	for _, a := range slices.Sorted(maps.Keys(accounts)) {
		snap.Accounts = append(snap.Accounts, *accounts[a])
	}
	app.rt.Claims.Each(func(c Content, owner AccountID) {
		snap.Claims = append(snap.Claims, types.ClaimRecord{Content: c, Owner: owner})
	})
	return snap
}

// appHash computes a deterministic SHA256 of the encoded snapshot.
// A snapshot that fails to encode would make the hash meaningless, so
// it panics rather than hashing partial output.
func (app *App) appHash() types.AppHash {
	data, err := cramberry.Marshal(app.snapshot())
	if err != nil {
		panic(fmt.Errorf("encode state snapshot: %w", err))
	}
	return types.AppHash(sha256.Sum256(data))
}

// callEvent describes a successful call.
func callEvent(ext Extrinsic) types.Event {
	ev := types.Event{Kind: ext.Call.Module() + "." + ext.Call.Name()}
	switch c := ext.Call.(type) {
	case balancesCall:
		if t, ok := c.Call.(transferCall); ok {
			ev.Attributes = []types.EventAttribute{
				{Key: "from", Value: ext.Caller},
				{Key: "to", Value: t.To},
				{Key: "amount", Value: t.Amount.String()},
			}
		}
	case claimsCall:
		var content Content
		switch cc := c.Call.(type) {
		case createClaimCall:
			content = cc.Content
		case revokeClaimCall:
			content = cc.Content
		}
		ev.Attributes = []types.EventAttribute{
			{Key: "owner", Value: ext.Caller},
			{Key: "content", Value: content},
		}
	}
	return ev
}
