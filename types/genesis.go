package types

// GenesisAccount is a bootstrap balance.
type GenesisAccount struct {
	Address string `cramberry:"1"`
	Balance Amount `cramberry:"2"`
}

// GenesisDoc is the document a fresh chain starts from.
type GenesisDoc struct {
	ChainID     string           `cramberry:"1"`
	GenesisTime Timestamp        `cramberry:"2"`
	Accounts    []GenesisAccount `cramberry:"3"`
}
