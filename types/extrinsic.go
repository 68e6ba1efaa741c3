package types

// Extrinsic is the encoded form of a caller-attributed call. A Tx is
// the cramberry encoding of one Extrinsic.
type Extrinsic struct {
	Caller string `cramberry:"1"`
	Call   Call   `cramberry:"2"`
}

// CallKind selects the variant of a Call.
type CallKind uint8

const (
	CallTransfer    CallKind = 1
	CallCreateClaim CallKind = 2
	CallRevokeClaim CallKind = 3
)

// Call is a tagged union. Kind selects the variant; only the matching
// payload field may be set. A payload whose fields are all zero may
// not survive encoding, so a missing payload decodes as the zero
// payload of Kind.
type Call struct {
	Kind        CallKind      `cramberry:"1"`
	Transfer    *TransferCall `cramberry:"2"`
	CreateClaim *ClaimCall    `cramberry:"3"`
	RevokeClaim *ClaimCall    `cramberry:"4"`
}

// TransferCall moves Amount from the caller to To.
type TransferCall struct {
	To     string `cramberry:"1"`
	Amount Amount `cramberry:"2"`
}

// ClaimCall names the content a claim call acts on.
type ClaimCall struct {
	Content string `cramberry:"1"`
}
