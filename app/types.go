package app

import (
	"github.com/duylongpro99/rsm/pallets/balances"
	"github.com/duylongpro99/rsm/pallets/claims"
	"github.com/duylongpro99/rsm/runtime"
)

// Concrete runtime configuration.
type (
	AccountID   = string
	BlockNumber = uint32
	Nonce       = uint32
	Content     = string
)

type (
	Runtime   = runtime.Runtime[AccountID, Balance, BlockNumber, Nonce, Content]
	Call      = runtime.Call[AccountID, Balance, BlockNumber, Nonce, Content]
	Block     = runtime.Block[AccountID, Balance, BlockNumber, Nonce, Content]
	Extrinsic = runtime.Extrinsic[AccountID, Balance, BlockNumber, Nonce, Content]
	Result    = runtime.ExtrinsicResult[AccountID]
)

type (
	balancesCall    = runtime.BalancesCall[AccountID, Balance, BlockNumber, Nonce, Content]
	claimsCall      = runtime.ClaimsCall[AccountID, Balance, BlockNumber, Nonce, Content]
	transferCall    = balances.TransferCall[AccountID, Balance]
	createClaimCall = claims.CreateClaimCall[AccountID, Content]
	revokeClaimCall = claims.RevokeClaimCall[AccountID, Content]
)

// NewRuntime creates an empty runtime with the concrete configuration.
func NewRuntime(opts ...runtime.Option) *Runtime {
	return runtime.New[AccountID, Balance, BlockNumber, Nonce, Content](opts...)
}

// Transfer builds a balances transfer of amount to to.
func Transfer(to AccountID, amount Balance) Call {
	return balancesCall{Call: transferCall{To: to, Amount: amount}}
}

// CreateClaim builds a claim on content.
func CreateClaim(content Content) Call {
	return claimsCall{Call: createClaimCall{Content: content}}
}

// RevokeClaim builds a revocation of the claim on content.
func RevokeClaim(content Content) Call {
	return claimsCall{Call: revokeClaimCall{Content: content}}
}
