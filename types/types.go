// Package types defines the plain value types that cross the host
// boundary of the runtime.
//
// These are Go structs with cramberry struct tags for deterministic
// binary serialization. The same encoding feeds transaction decoding
// and the app hash, so field tags must never be renumbered.
package types

// AppHash is a deterministic fingerprint of the runtime state after
// a block.
type AppHash [32]byte

// Tx is an encoded extrinsic. See Extrinsic for the layout.
type Tx []byte

// QueryPath selects what a StateQuery reads (e.g., "/balance").
type QueryPath string

// Amount is a 256-bit unsigned balance, big-endian.
type Amount [32]byte

// BlockID identifies a committed block.
type BlockID struct {
	Height  uint64  `cramberry:"1"`
	AppHash AppHash `cramberry:"2"`
}
