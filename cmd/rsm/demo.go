package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/spf13/cobra"

	"github.com/duylongpro99/rsm/app"
	"github.com/duylongpro99/rsm/local"
	"github.com/duylongpro99/rsm/server"
	"github.com/duylongpro99/rsm/types"
)

var demoFunds uint64

func init() {
	demoCmd.Flags().Uint64Var(&demoFunds, "funds", 100, "genesis balance of account A")
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a sample chain of blocks and print the final state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a := app.New(app.WithLogger(logger))
		conn := local.NewConnection(a, server.WithLogger(logger))
		defer conn.Close()

		return runDemo(cmd.Context(), conn, demoFunds, cmd.OutOrStdout())
	},
}

// demoBlocks is the sample chain: transfers out of A, a claim, and a
// few calls that fail without stopping their block.
func demoBlocks() [][]types.Tx {
	return [][]types.Tx{
		{
			app.MustEncode("A", app.Transfer("B", app.NewBalance(30))),
			app.MustEncode("A", app.Transfer("C", app.NewBalance(20))),
			app.MustEncode("A", app.CreateClaim("hello")),
		},
		{
			app.MustEncode("B", app.CreateClaim("hello")),
			app.MustEncode("C", app.RevokeClaim("hello")),
			app.MustEncode("B", app.Transfer("C", app.NewBalance(1000))),
			app.MustEncode("C", app.Transfer("B", app.NewBalance(5))),
		},
	}
}

func runDemo(ctx context.Context, conn *local.Connection, funds uint64, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := conn.Handshake(ctx, types.HandshakeRequest{
		Genesis: &types.GenesisDoc{
			ChainID: "rsm-demo",
			Accounts: []types.GenesisAccount{
				{Address: "A", Balance: app.NewBalance(funds).Amount()},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	for i, txs := range demoBlocks() {
		height := uint64(i + 1)
		outcome, err := conn.ExecuteBlock(ctx, types.FinalizedBlock{Height: height, Txs: txs})
		if err != nil {
			return fmt.Errorf("block %d: %w", height, err)
		}
		if _, err := conn.Commit(ctx); err != nil {
			return fmt.Errorf("commit %d: %w", height, err)
		}

		fmt.Fprintf(out, "block %d  app_hash=%x\n", height, outcome.AppHash[:8])
		for _, o := range outcome.TxOutcomes {
			status := "ok"
			if !o.OK() {
				status = o.Info
			}
			fmt.Fprintf(out, "  tx %d  %-8s %s\n", o.Index, o.Module, status)
		}
	}

	res, err := conn.Query(ctx, types.StateQuery{Path: types.QueryState})
	if err != nil {
		return fmt.Errorf("query state: %w", err)
	}
	var snap types.StateSnapshot
	if err := cramberry.Unmarshal(res.Value, &snap); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	return printState(out, snap)
}

func printState(out io.Writer, snap types.StateSnapshot) error {
	fmt.Fprintf(out, "\nblock_number %d\n", snap.BlockNumber)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tBALANCE\tNONCE")
	for _, acc := range snap.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", acc.Address, app.BalanceFromAmount(acc.Balance), acc.Nonce)
	}
	fmt.Fprintln(tw, "CLAIM\tOWNER\t")
	for _, c := range snap.Claims {
		fmt.Fprintf(tw, "%s\t%s\t\n", c.Content, c.Owner)
	}
	return tw.Flush()
}
