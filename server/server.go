package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/duylongpro99/rsm"
	"github.com/duylongpro99/rsm/types"
)

// ErrHalted is returned by ExecuteBlock once the runtime has halted.
var ErrHalted = errors.New("rsm: runtime halted")

// ErrSimulationUnsupported is returned by Simulate when the host did
// not declare CapSimulation.
var ErrSimulationUnsupported = errors.New("rsm: Simulator not supported")

// Server wraps a runtime host with lifecycle enforcement and
// capability routing. Drivers interact with the host exclusively
// through this server.
type Server struct {
	app    rsm.Lifecycle
	guard  *LifecycleGuard
	caps   types.Capabilities
	logger zerolog.Logger

	// Optional interfaces (nil if not supported).
	simulator rsm.Simulator

	// Last block outcome (held between ExecuteBlock and Commit).
	mu             sync.Mutex
	lastOutcome    *types.BlockOutcome
	lastExecHeight uint64
	halt           *rsm.HaltError
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a new Server wrapping the given host.
func New(app rsm.Lifecycle, opts ...Option) *Server {
	s := &Server{
		app:    app,
		guard:  NewLifecycleGuard(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "server").Logger()
	// Pre-discover optional interfaces (validated after handshake).
	s.simulator, _ = app.(rsm.Simulator)
	return s
}

// Handshake performs the startup handshake, validates capability
// declarations, and transitions the state machine to Ready.
func (s *Server) Handshake(ctx context.Context, req types.HandshakeRequest) (types.HandshakeResponse, error) {
	s.guard.AcquireHandshake()

	resp, err := s.app.Handshake(ctx, req)
	if err != nil {
		s.guard.FailHandshake()
		return resp, err
	}

	if err := s.discoverCapabilities(resp.Capabilities); err != nil {
		s.guard.FailHandshake()
		return resp, err
	}

	s.caps = resp.Capabilities
	s.guard.CompleteHandshake()

	ev := s.logger.Info().Stringer("capabilities", s.caps)
	if resp.LastBlock != nil {
		ev = ev.Uint64("last_height", resp.LastBlock.Height)
	}
	ev.Msg("Handshake complete")
	return resp, nil
}

// CheckTx decodes a transaction without executing it.
// Safe for concurrent use.
func (s *Server) CheckTx(ctx context.Context, tx types.Tx, mctx types.MempoolContext) (types.GateVerdict, error) {
	s.guard.CheckConcurrent()
	return s.app.CheckTx(ctx, tx, mctx)
}

// ExecuteBlock executes a block. A HaltError from the host moves the
// server to the terminal Halted state; every later ExecuteBlock
// returns an error wrapping ErrHalted.
func (s *Server) ExecuteBlock(ctx context.Context, block types.FinalizedBlock) (types.BlockOutcome, error) {
	if s.guard.IsHalted() {
		return types.BlockOutcome{}, s.haltedErr()
	}
	s.guard.AcquireExecute()

	outcome, err := s.app.ExecuteBlock(ctx, block)
	if err != nil {
		if h, ok := rsm.IsHalt(err); ok {
			s.mu.Lock()
			s.halt = h
			s.mu.Unlock()
			s.guard.HaltExecute()
			s.logger.Error().Err(err).Uint64("height", block.Height).Msg("Runtime halted")
			return outcome, err
		}
		s.guard.FailExecute()
		s.logger.Warn().Err(err).Uint64("height", block.Height).Msg("Block rejected")
		return outcome, err
	}

	s.mu.Lock()
	s.lastOutcome = &outcome
	s.lastExecHeight = block.Height
	s.mu.Unlock()

	s.guard.CompleteExecute()

	failed := 0
	for _, o := range outcome.TxOutcomes {
		if !o.OK() {
			failed++
		}
	}
	s.logger.Debug().
		Uint64("height", block.Height).
		Int("txs", len(outcome.TxOutcomes)).
		Int("failed", failed).
		Msg("Block executed")
	return outcome, nil
}

func (s *Server) haltedErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Errorf("%w: %w", ErrHalted, s.halt)
}

// Commit seals the state from the last ExecuteBlock.
func (s *Server) Commit(ctx context.Context) (types.CommitResult, error) {
	s.guard.AcquireCommit()

	result, err := s.app.Commit(ctx)

	s.mu.Lock()
	s.lastOutcome = nil
	s.mu.Unlock()

	s.guard.CompleteCommit()
	return result, err
}

// Query reads runtime state. Safe for concurrent use.
func (s *Server) Query(ctx context.Context, req types.StateQuery) (types.StateQueryResult, error) {
	s.guard.CheckConcurrent()
	return s.app.Query(ctx, req)
}

// Capabilities returns the host's declared capabilities.
// Only valid after Handshake completes.
func (s *Server) Capabilities() types.Capabilities {
	return s.caps
}

// Simulate delegates to Simulator if supported.
// Safe for concurrent use.
func (s *Server) Simulate(ctx context.Context, tx types.Tx) (types.TxOutcome, error) {
	if s.AsSimulator() == nil {
		return types.TxOutcome{}, ErrSimulationUnsupported
	}
	s.guard.CheckConcurrent()
	return s.simulator.Simulate(ctx, tx)
}

// AsSimulator returns the Simulator interface or nil.
func (s *Server) AsSimulator() rsm.Simulator {
	if s.caps.Has(types.CapSimulation) {
		return s.simulator
	}
	return nil
}

// LastOutcome returns the most recent BlockOutcome (between
// ExecuteBlock and Commit). Returns nil if no outcome is pending.
func (s *Server) LastOutcome() *types.BlockOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOutcome
}

// Halted returns the error that halted the runtime, or nil.
func (s *Server) Halted() *rsm.HaltError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.halt
}

// State returns the lifecycle state name.
func (s *Server) State() string {
	return s.guard.State()
}

// Close is a no-op for the server wrapper.
func (s *Server) Close() error { return nil }

// discoverCapabilities checks which optional interfaces the host
// implements and verifies consistency with declared capabilities.
func (s *Server) discoverCapabilities(declared types.Capabilities) error {
	_, hasSimulator := s.app.(rsm.Simulator)

	if declared.Has(types.CapSimulation) && !hasSimulator {
		return fmt.Errorf("rsm: host declared CapSimulation but does not implement Simulator")
	}

	// Warn (but don't error) if the host implements an interface but didn't declare it.
	if !declared.Has(types.CapSimulation) && hasSimulator {
		s.logger.Warn().Msg("Host implements Simulator but did not declare it; capability will not be used")
	}
	return nil
}
