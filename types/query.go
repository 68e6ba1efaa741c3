package types

// Query paths understood by the application.
const (
	QueryBalance     QueryPath = "/balance"
	QueryNonce       QueryPath = "/nonce"
	QueryClaim       QueryPath = "/claim"
	QueryBlockNumber QueryPath = "/block_number"
	QueryBlockTime   QueryPath = "/block_time"
	QueryState       QueryPath = "/state"
)

// StateQuery is a request to read runtime state.
type StateQuery struct {
	Path QueryPath `cramberry:"1"`
	Data []byte    `cramberry:"2"`
}

// StateQueryResult is the application's response to a state query.
type StateQueryResult struct {
	Code   uint32 `cramberry:"1"`
	Key    []byte `cramberry:"2"`
	Value  []byte `cramberry:"3"`
	Height uint64 `cramberry:"4"`
	Info   string `cramberry:"5"`
}
