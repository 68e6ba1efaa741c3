package types

// TxOutcome codes.
const (
	CodeOK uint32 = 0
	// CodeDecode marks a transaction that could not be decoded. It is
	// skipped without touching any state.
	CodeDecode uint32 = 1
	// CodeDispatch marks a transaction whose call was rejected by its
	// module. The caller's nonce was still incremented.
	CodeDispatch uint32 = 2
)

// TxOutcome is the result of executing a single transaction.
type TxOutcome struct {
	// Position of this tx in the block (0-indexed).
	Index uint32 `cramberry:"1"`
	// 0 = success. See the Code constants.
	Code uint32 `cramberry:"2"`
	// Error text when Code != 0.
	Info string `cramberry:"3"`
	// Module that handled the call, empty for undecodable txs.
	Module string `cramberry:"4"`
	// Events emitted by this transaction.
	Events []Event `cramberry:"5"`
}

// OK returns true if the transaction executed successfully.
func (t TxOutcome) OK() bool { return t.Code == CodeOK }

// BlockOutcome is the output of executing a block.
type BlockOutcome struct {
	// Per-transaction results, in block order.
	TxOutcomes []TxOutcome `cramberry:"1"`
	// Runtime state root after this block.
	AppHash AppHash `cramberry:"2"`
}

// FinalizedBlock is an ordered, already-authenticated block delivered
// to the runtime for execution.
type FinalizedBlock struct {
	Height uint64    `cramberry:"1"`
	Time   Timestamp `cramberry:"2"`
	Txs    []Tx      `cramberry:"3"`
}

// CommitResult is returned after the host seals a block.
type CommitResult struct {
	Height  uint64  `cramberry:"1"`
	AppHash AppHash `cramberry:"2"`
}
