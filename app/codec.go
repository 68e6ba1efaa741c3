package app

import (
	"errors"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"

	"github.com/duylongpro99/rsm/types"
)

// ErrMalformedTx is returned for a transaction that does not decode
// to exactly one extrinsic.
var ErrMalformedTx = errors.New("app: malformed transaction")

// EncodeExtrinsic encodes a call attributed to caller as a transaction.
func EncodeExtrinsic(caller AccountID, call Call) (types.Tx, error) {
	if caller == "" {
		return nil, fmt.Errorf("%w: missing caller", ErrMalformedTx)
	}
	wire, err := toWireCall(call)
	if err != nil {
		return nil, err
	}
	data, err := cramberry.Marshal(types.Extrinsic{Caller: caller, Call: wire})
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

// MustEncode is EncodeExtrinsic for a non-empty caller and a call
// built with Transfer, CreateClaim or RevokeClaim. It panics on any
// encoding error.
func MustEncode(caller AccountID, call Call) types.Tx {
	tx, err := EncodeExtrinsic(caller, call)
	if err != nil {
		panic(err)
	}
	return tx
}

// DecodeExtrinsic decodes a transaction produced by EncodeExtrinsic.
func DecodeExtrinsic(tx types.Tx) (Extrinsic, error) {
	if len(tx) == 0 {
		return Extrinsic{}, fmt.Errorf("%w: empty transaction", ErrMalformedTx)
	}
	var ext types.Extrinsic
	if err := cramberry.Unmarshal(tx, &ext); err != nil {
		return Extrinsic{}, fmt.Errorf("%w: %v", ErrMalformedTx, err)
	}
	if ext.Caller == "" {
		return Extrinsic{}, fmt.Errorf("%w: missing caller", ErrMalformedTx)
	}
	call, err := fromWireCall(ext.Call)
	if err != nil {
		return Extrinsic{}, err
	}
	return Extrinsic{Caller: ext.Caller, Call: call}, nil
}

func fromWireCall(c types.Call) (Call, error) {
	set := 0
	for _, p := range []bool{c.Transfer != nil, c.CreateClaim != nil, c.RevokeClaim != nil} {
		if p {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: call sets %d payloads", ErrMalformedTx, set)
	}

	switch c.Kind {
	case types.CallTransfer:
		if c.CreateClaim != nil || c.RevokeClaim != nil {
			break
		}
		var t types.TransferCall
		if c.Transfer != nil {
			t = *c.Transfer
		}
		return Transfer(t.To, BalanceFromAmount(t.Amount)), nil
	case types.CallCreateClaim:
		if c.Transfer != nil || c.RevokeClaim != nil {
			break
		}
		var cc types.ClaimCall
		if c.CreateClaim != nil {
			cc = *c.CreateClaim
		}
		return CreateClaim(cc.Content), nil
	case types.CallRevokeClaim:
		if c.Transfer != nil || c.CreateClaim != nil {
			break
		}
		var cc types.ClaimCall
		if c.RevokeClaim != nil {
			cc = *c.RevokeClaim
		}
		return RevokeClaim(cc.Content), nil
	default:
		return nil, fmt.Errorf("%w: unknown call kind %d", ErrMalformedTx, c.Kind)
	}
	return nil, fmt.Errorf("%w: payload does not match call kind %d", ErrMalformedTx, c.Kind)
}

func toWireCall(call Call) (types.Call, error) {
	switch c := call.(type) {
	case balancesCall:
		switch bc := c.Call.(type) {
		case transferCall:
			return types.Call{
				Kind:     types.CallTransfer,
				Transfer: &types.TransferCall{To: bc.To, Amount: bc.Amount.Amount()},
			}, nil
		}
	case claimsCall:
		switch cc := c.Call.(type) {
		case createClaimCall:
			return types.Call{Kind: types.CallCreateClaim, CreateClaim: &types.ClaimCall{Content: cc.Content}}, nil
		case revokeClaimCall:
			return types.Call{Kind: types.CallRevokeClaim, RevokeClaim: &types.ClaimCall{Content: cc.Content}}, nil
		}
	}
	return types.Call{}, fmt.Errorf("%w: unsupported call %T", ErrMalformedTx, call)
}
