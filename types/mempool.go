package types

// MempoolContext tells the application whether a transaction
// is being seen for the first time or is being re-validated.
type MempoolContext uint8

const (
	// MempoolFirstSeen indicates the transaction was just received.
	MempoolFirstSeen MempoolContext = 1
	// MempoolRevalidation indicates the transaction is being
	// re-checked after a block was committed.
	MempoolRevalidation MempoolContext = 2
)

// GateVerdict is the application's decision on whether a
// transaction is well formed.
type GateVerdict struct {
	// 0 = accepted. Non-zero = rejected.
	Code uint32 `cramberry:"1"`
	// Rejection reason.
	Info string `cramberry:"2"`
	// Caller the transaction is attributed to.
	Sender string `cramberry:"3"`
	// Module the call is routed to.
	Module string `cramberry:"4"`
}

// Accepted returns true if the transaction was admitted.
func (v GateVerdict) Accepted() bool { return v.Code == 0 }
