package types

// AccountState is one account's entry in a StateSnapshot.
type AccountState struct {
	Address string `cramberry:"1"`
	Balance Amount `cramberry:"2"`
	Nonce   uint64 `cramberry:"3"`
}

// ClaimRecord is one claim's entry in a StateSnapshot.
type ClaimRecord struct {
	Content string `cramberry:"1"`
	Owner   string `cramberry:"2"`
}

// StateSnapshot is the full runtime state in canonical order:
// accounts sorted by address, claims sorted by content. Its cramberry
// encoding is what the app hash is computed over.
type StateSnapshot struct {
	BlockNumber uint64         `cramberry:"1"`
	Accounts    []AccountState `cramberry:"2"`
	Claims      []ClaimRecord  `cramberry:"3"`
}
