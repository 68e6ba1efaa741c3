package types

// HandshakeRequest is sent by the host process on every startup.
type HandshakeRequest struct {
	// The last block the host committed. Nil = fresh chain.
	LastCommitted *BlockID `cramberry:"1"`
	// Genesis document. Only set when LastCommitted is nil.
	Genesis *GenesisDoc `cramberry:"2"`
}

// HandshakeResponse is the application's reply, reporting its
// state and capabilities.
type HandshakeResponse struct {
	// The last block the application committed. Nil = no blocks yet.
	LastBlock *BlockID `cramberry:"1"`
	// App hash of the current state.
	AppHash *AppHash `cramberry:"2"`
	// Capabilities this application supports.
	Capabilities Capabilities `cramberry:"3"`
}
