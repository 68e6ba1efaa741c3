package local

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duylongpro99/rsm/app"
	rsmtest "github.com/duylongpro99/rsm/testing"
	"github.com/duylongpro99/rsm/types"
)

func genesis() *types.GenesisDoc {
	doc := rsmtest.DefaultGenesis()
	doc.Accounts = []types.GenesisAccount{
		{Address: "alice", Balance: app.NewBalance(100).Amount()},
	}
	return &doc
}

func TestLocalConnection_FullCycle(t *testing.T) {
	conn := NewConnection(app.New())
	defer conn.Close()

	_, err := conn.Handshake(context.Background(), types.HandshakeRequest{Genesis: genesis()})
	require.NoError(t, err)

	assert.True(t, conn.Capabilities().Has(types.CapSimulation))
	require.NotNil(t, conn.AsSimulator())

	tx := app.MustEncode("alice", app.Transfer("bob", app.NewBalance(42)))
	outcome, err := conn.ExecuteBlock(context.Background(), rsmtest.MakeBlock(1, tx))
	require.NoError(t, err)
	require.Len(t, outcome.TxOutcomes, 1)
	require.True(t, outcome.TxOutcomes[0].OK(), outcome.TxOutcomes[0].Info)

	commit, err := conn.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), commit.Height)
	assert.Equal(t, outcome.AppHash, commit.AppHash)

	result, err := conn.Query(context.Background(), types.StateQuery{
		Path: types.QueryBalance,
		Data: []byte("bob"),
	})
	require.NoError(t, err)
	assert.Equal(t, app.NewBalance(42), app.BalanceFromAmount(types.Amount(result.Value)))

	result, err = conn.Query(context.Background(), types.StateQuery{
		Path: types.QueryNonce,
		Data: []byte("alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), binary.BigEndian.Uint64(result.Value))
}

func TestLocalConnection_Simulate(t *testing.T) {
	a := app.New()
	conn := NewConnection(a)

	_, err := conn.Handshake(context.Background(), types.HandshakeRequest{Genesis: genesis()})
	require.NoError(t, err)

	out, err := conn.AsSimulator().Simulate(context.Background(),
		app.MustEncode("alice", app.Transfer("bob", app.NewBalance(500))))
	require.NoError(t, err)
	assert.Equal(t, types.CodeDispatch, out.Code)

	// Nothing the simulation did is visible.
	assert.Zero(t, a.Nonce("alice"))
}

func TestLocalConnection_CheckTxConcurrent(t *testing.T) {
	conn := NewConnection(app.New())

	_, err := conn.Handshake(context.Background(), types.HandshakeRequest{Genesis: genesis()})
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			tx := app.MustEncode("alice", app.CreateClaim("doc"))
			v, err := conn.CheckTx(context.Background(), tx, types.MempoolFirstSeen)
			if err != nil {
				t.Errorf("CheckTx error: %v", err)
				return
			}
			if !v.Accepted() {
				t.Errorf("CheckTx rejected: %s", v.Info)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}
