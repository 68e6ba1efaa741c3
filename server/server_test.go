package server

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/duylongpro99/rsm"
	"github.com/duylongpro99/rsm/types"
)

// testApp is a minimal host implementing every interface, kept here
// to avoid an import cycle with the rsmtest package.
type testApp struct {
	caps           types.Capabilities
	handshakeCalls int
	// Heights at which ExecuteBlock fails or halts.
	failAt uint64
	haltAt uint64
}

var (
	_ rsm.Lifecycle = (*testApp)(nil)
	_ rsm.Simulator = (*testApp)(nil)
)

var errBadHeight = errors.New("bad height")

func (a *testApp) Handshake(_ context.Context, _ types.HandshakeRequest) (types.HandshakeResponse, error) {
	a.handshakeCalls++
	return types.HandshakeResponse{Capabilities: a.caps}, nil
}

func (a *testApp) CheckTx(_ context.Context, _ types.Tx, _ types.MempoolContext) (types.GateVerdict, error) {
	return types.GateVerdict{Code: 0}, nil
}

func (a *testApp) ExecuteBlock(_ context.Context, block types.FinalizedBlock) (types.BlockOutcome, error) {
	switch block.Height {
	case a.failAt:
		return types.BlockOutcome{}, errBadHeight
	case a.haltAt:
		return types.BlockOutcome{}, rsm.NewHaltError(block.Height, "block number overflow")
	}
	outcomes := make([]types.TxOutcome, len(block.Txs))
	for i := range block.Txs {
		outcomes[i] = types.TxOutcome{Index: uint32(i), Code: 0}
	}
	return types.BlockOutcome{
		TxOutcomes: outcomes,
		AppHash:    types.AppHash{0x01},
	}, nil
}

func (a *testApp) Commit(_ context.Context) (types.CommitResult, error) {
	return types.CommitResult{}, nil
}

func (a *testApp) Query(_ context.Context, _ types.StateQuery) (types.StateQueryResult, error) {
	return types.StateQueryResult{}, nil
}

func (a *testApp) Simulate(_ context.Context, _ types.Tx) (types.TxOutcome, error) {
	return types.TxOutcome{Code: 0}, nil
}

func genesis(t *testing.T, srv *Server) {
	t.Helper()
	_, err := srv.Handshake(context.Background(), types.HandshakeRequest{
		Genesis: &types.GenesisDoc{ChainID: "test"},
	})
	if err != nil {
		t.Fatalf("handshake failed: %v", err)
	}
}

// --- Tests ---

func TestServer_Handshake_Genesis(t *testing.T) {
	app := &testApp{}
	srv := New(app)

	resp, err := srv.Handshake(context.Background(), types.HandshakeRequest{
		Genesis: &types.GenesisDoc{ChainID: "test"},
	})
	if err != nil {
		t.Fatalf("handshake failed: %v", err)
	}
	if resp.Capabilities != 0 {
		t.Errorf("expected no capabilities, got %s", resp.Capabilities)
	}
	if app.handshakeCalls != 1 {
		t.Errorf("expected 1 handshake call, got %d", app.handshakeCalls)
	}
}

func TestServer_Handshake_WarnsOnUndeclared(t *testing.T) {
	var buf bytes.Buffer
	srv := New(&testApp{}, WithLogger(zerolog.New(&buf)))
	genesis(t, srv)

	if !strings.Contains(buf.String(), "did not declare") {
		t.Errorf("expected undeclared capability warning, got %q", buf.String())
	}
}

func TestServer_ExecuteCommitCycle(t *testing.T) {
	srv := New(&testApp{})
	genesis(t, srv)

	block := types.FinalizedBlock{
		Height: 1,
		Txs:    []types.Tx{{0x01}},
	}

	outcome, err := srv.ExecuteBlock(context.Background(), block)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(outcome.TxOutcomes) != 1 {
		t.Errorf("expected 1 tx outcome, got %d", len(outcome.TxOutcomes))
	}

	if srv.LastOutcome() == nil {
		t.Error("expected non-nil LastOutcome between execute and commit")
	}

	_, err = srv.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if srv.LastOutcome() != nil {
		t.Error("expected nil LastOutcome after commit")
	}
}

func TestServer_ExecuteFailureAllowsNextBlock(t *testing.T) {
	srv := New(&testApp{failAt: 1})
	genesis(t, srv)

	_, err := srv.ExecuteBlock(context.Background(), types.FinalizedBlock{Height: 1})
	if !errors.Is(err, errBadHeight) {
		t.Fatalf("expected errBadHeight, got %v", err)
	}
	if srv.State() != "Ready" {
		t.Fatalf("expected Ready after failed execute, got %s", srv.State())
	}

	if _, err := srv.ExecuteBlock(context.Background(), types.FinalizedBlock{Height: 2}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if _, err := srv.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
}

func TestServer_Halt(t *testing.T) {
	srv := New(&testApp{haltAt: 2})
	genesis(t, srv)

	if _, err := srv.ExecuteBlock(context.Background(), types.FinalizedBlock{Height: 1}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if _, err := srv.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	_, err := srv.ExecuteBlock(context.Background(), types.FinalizedBlock{Height: 2})
	if _, ok := rsm.IsHalt(err); !ok {
		t.Fatalf("expected HaltError, got %v", err)
	}
	if srv.State() != "Halted" {
		t.Fatalf("expected Halted, got %s", srv.State())
	}
	if srv.Halted() == nil {
		t.Fatal("expected Halted() to report the halt")
	}

	// Later blocks are refused without reaching the host.
	_, err = srv.ExecuteBlock(context.Background(), types.FinalizedBlock{Height: 3})
	if !errors.Is(err, ErrHalted) {
		t.Fatalf("expected ErrHalted, got %v", err)
	}
	if _, ok := rsm.IsHalt(err); !ok {
		t.Fatal("expected the original HaltError to be wrapped")
	}

	// Reads keep working.
	if _, err := srv.Query(context.Background(), types.StateQuery{Path: types.QueryBlockNumber}); err != nil {
		t.Fatalf("query after halt failed: %v", err)
	}
}

func TestServer_CheckTxConcurrent(t *testing.T) {
	srv := New(&testApp{})
	genesis(t, srv)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, err := srv.CheckTx(context.Background(), types.Tx{0x01}, types.MempoolFirstSeen)
			if err != nil {
				t.Errorf("CheckTx error: %v", err)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestServer_CapabilityGating(t *testing.T) {
	srv := New(&testApp{})
	genesis(t, srv)

	if srv.AsSimulator() != nil {
		t.Error("expected nil Simulator when not declared")
	}
	if _, err := srv.Simulate(context.Background(), types.Tx{0x01}); !errors.Is(err, ErrSimulationUnsupported) {
		t.Errorf("expected ErrSimulationUnsupported, got %v", err)
	}
}

func TestServer_CapabilityFullAccess(t *testing.T) {
	srv := New(&testApp{caps: types.CapSimulation})
	genesis(t, srv)

	if srv.AsSimulator() == nil {
		t.Error("expected non-nil Simulator")
	}
	if _, err := srv.Simulate(context.Background(), types.Tx{0x01}); err != nil {
		t.Errorf("simulate failed: %v", err)
	}
}

// lifecycleOnly implements Lifecycle but not Simulator.
type lifecycleOnly struct{ rsm.Lifecycle }

func TestServer_DeclaredButNotImplemented(t *testing.T) {
	srv := New(lifecycleOnly{&testApp{caps: types.CapSimulation}})

	_, err := srv.Handshake(context.Background(), types.HandshakeRequest{})
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if srv.State() != "Init" {
		t.Errorf("expected Init after failed handshake, got %s", srv.State())
	}
}
