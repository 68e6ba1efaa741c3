package types_test

import (
	"testing"
	"time"

	"github.com/duylongpro99/rsm/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// roundTrip marshals v, unmarshals into a new T, and returns it.
func roundTrip[T any](t *testing.T, v T) T {
	t.Helper()
	data, err := cramberry.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out T
	if err := cramberry.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return out
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := types.TimeToTimestamp(time.Date(2024, 6, 15, 12, 30, 45, 123456789, time.UTC))
	got := roundTrip(t, ts)
	if got != ts {
		t.Fatalf("Timestamp round-trip failed: got %+v, want %+v", got, ts)
	}
	goTime := got.ToTime()
	if goTime.Year() != 2024 || goTime.Month() != 6 || goTime.Day() != 15 {
		t.Fatalf("Timestamp.ToTime date wrong: %v", goTime)
	}
	if goTime.Nanosecond() != 123456789 {
		t.Fatalf("Timestamp.ToTime nanos wrong: %d", goTime.Nanosecond())
	}
}

func TestExtrinsic_Transfer(t *testing.T) {
	v := types.Extrinsic{
		Caller: "alice",
		Call: types.Call{
			Kind:     types.CallTransfer,
			Transfer: &types.TransferCall{To: "bob", Amount: types.Amount{31: 50}},
		},
	}
	got := roundTrip(t, v)
	if got.Caller != "alice" {
		t.Fatalf("caller mismatch: %q", got.Caller)
	}
	if got.Call.Kind != types.CallTransfer {
		t.Fatalf("kind mismatch: %d", got.Call.Kind)
	}
	if got.Call.Transfer == nil {
		t.Fatal("expected Transfer variant to survive encoding")
	}
	if got.Call.CreateClaim != nil || got.Call.RevokeClaim != nil {
		t.Fatal("unexpected extra variant after decoding")
	}
	if *got.Call.Transfer != *v.Call.Transfer {
		t.Fatalf("transfer mismatch: got %+v", *got.Call.Transfer)
	}
}

func TestExtrinsic_Claim(t *testing.T) {
	v := types.Extrinsic{
		Caller: "alice",
		Call:   types.Call{Kind: types.CallRevokeClaim, RevokeClaim: &types.ClaimCall{Content: "tx1"}},
	}
	got := roundTrip(t, v)
	if got.Call.Kind != types.CallRevokeClaim {
		t.Fatalf("kind mismatch: %d", got.Call.Kind)
	}
	if got.Call.RevokeClaim == nil || got.Call.RevokeClaim.Content != "tx1" {
		t.Fatalf("revoke claim mismatch: %+v", got.Call)
	}
}

func TestExtrinsic_EmptyClaimKeepsKind(t *testing.T) {
	v := types.Extrinsic{
		Caller: "alice",
		Call:   types.Call{Kind: types.CallCreateClaim, CreateClaim: &types.ClaimCall{}},
	}
	got := roundTrip(t, v)
	if got.Call.Kind != types.CallCreateClaim {
		t.Fatalf("kind lost in encoding: %+v", got.Call)
	}
}

func TestBlockOutcome(t *testing.T) {
	v := types.BlockOutcome{
		TxOutcomes: []types.TxOutcome{
			{Index: 0, Code: types.CodeOK, Module: "balances", Events: []types.Event{{Kind: "balances.transfer"}}},
			{Index: 1, Code: types.CodeDispatch, Module: "claims", Info: "claims: claim already exists"},
		},
		AppHash: types.AppHash{0xAB},
	}
	got := roundTrip(t, v)
	if got.AppHash != v.AppHash {
		t.Fatalf("BlockOutcome.AppHash mismatch")
	}
	if len(got.TxOutcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(got.TxOutcomes))
	}
	if got.TxOutcomes[1].OK() || got.TxOutcomes[1].Info != v.TxOutcomes[1].Info {
		t.Fatalf("second outcome mismatch: %+v", got.TxOutcomes[1])
	}
}

func TestFinalizedBlock(t *testing.T) {
	v := types.FinalizedBlock{
		Height: 100,
		Time:   types.TimeToTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Txs:    []types.Tx{[]byte("tx1"), []byte("tx2")},
	}
	got := roundTrip(t, v)
	if got.Height != v.Height || got.Time != v.Time {
		t.Fatalf("FinalizedBlock round-trip failed")
	}
	if len(got.Txs) != 2 || string(got.Txs[1]) != "tx2" {
		t.Fatalf("FinalizedBlock txs wrong")
	}
}

func TestHandshakeRequest(t *testing.T) {
	bid := types.BlockID{Height: 10, AppHash: types.AppHash{0x01}}
	got := roundTrip(t, types.HandshakeRequest{LastCommitted: &bid})
	if got.LastCommitted == nil || *got.LastCommitted != bid {
		t.Fatalf("HandshakeRequest round-trip failed")
	}
	if got.Genesis != nil {
		t.Fatal("expected nil Genesis")
	}
}

func TestGenesisDoc(t *testing.T) {
	v := types.GenesisDoc{
		ChainID: "test",
		Accounts: []types.GenesisAccount{
			{Address: "A", Balance: types.Amount{31: 100}},
		},
	}
	got := roundTrip(t, v)
	if got.ChainID != "test" || len(got.Accounts) != 1 || got.Accounts[0] != v.Accounts[0] {
		t.Fatalf("GenesisDoc round-trip failed: %+v", got)
	}
}

func TestCapabilities(t *testing.T) {
	var none types.Capabilities
	if none.String() != "none" {
		t.Errorf("expected none, got %s", none)
	}
	if !types.CapSimulation.Has(types.CapSimulation) {
		t.Error("expected CapSimulation to have itself")
	}
	if types.CapSimulation.String() != "Simulation" {
		t.Errorf("unexpected string %s", types.CapSimulation)
	}
}
