package runtime

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/duylongpro99/rsm/support"
)

// ErrBlockNumberMismatch is returned when a block's declared number is
// not the runtime's block number after advancing it.
var ErrBlockNumberMismatch = errors.New("runtime: block number mismatch")

// Block is a block of runtime calls.
type Block[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] = support.Block[BN, A, Call[A, B, BN, N, C]]

// Extrinsic is a runtime call attributed to a caller.
type Extrinsic[A cmp.Ordered, B support.Amount[B], BN support.Counter, N support.Counter, C cmp.Ordered] = support.Extrinsic[A, Call[A, B, BN, N, C]]

// ExtrinsicResult records how one extrinsic of a block went.
type ExtrinsicResult[A cmp.Ordered] struct {
	Index  int
	Caller A
	Module string
	Call   string
	// Err is the pallet error, unwrapped. Nil on success.
	Err error
}

// OK reports whether the extrinsic's call succeeded.
func (r ExtrinsicResult[A]) OK() bool { return r.Err == nil }

// ExecuteBlock advances the runtime by one block.
//
// The block number is incremented first, unconditionally. If it then
// differs from the header, an error wrapping ErrBlockNumberMismatch is
// returned and no extrinsic runs. Otherwise every extrinsic runs in
// order: the caller's nonce is incremented, then the call is
// dispatched. A failed call is logged and recorded, and execution
// continues with the next extrinsic; nothing is rolled back.
//
// The returned error reflects only the header check. Per-extrinsic
// outcomes are in the returned results, one per extrinsic.
func (rt *Runtime[A, B, BN, N, C]) ExecuteBlock(block Block[A, B, BN, N, C]) ([]ExtrinsicResult[A], error) {
	rt.System.IncBlockNumber()

	current := rt.System.BlockNumber()
	if current != block.Header.BlockNumber {
		return nil, fmt.Errorf("%w: runtime at %d, block declares %d",
			ErrBlockNumberMismatch, uint64(current), uint64(block.Header.BlockNumber))
	}

	results := make([]ExtrinsicResult[A], len(block.Extrinsics))
	for i, ext := range block.Extrinsics {
		rt.System.IncNonce(ext.Caller)

		res := ExtrinsicResult[A]{Index: i, Caller: ext.Caller}
		if ext.Call != nil {
			res.Module = ext.Call.Module()
			res.Call = ext.Call.Name()
		}
		res.Err = rt.Dispatch(ext.Caller, ext.Call)
		results[i] = res

		if res.Err != nil {
			rt.logger.Warn().
				Err(res.Err).
				Uint64("block_number", uint64(current)).
				Int("extrinsic", i).
				Str("caller", fmt.Sprint(ext.Caller)).
				Str("module", res.Module).
				Str("call", res.Call).
				Msg("Extrinsic failed")
		}
	}

	rt.logger.Debug().
		Uint64("block_number", uint64(current)).
		Int("extrinsics", len(block.Extrinsics)).
		Msg("Block executed")

	return results, nil
}
