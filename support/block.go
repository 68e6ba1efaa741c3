package support

// Header carries the block number a block claims to be.
type Header[BN Counter] struct {
	BlockNumber BN
}

// Extrinsic is a single caller-attributed call. The caller is assumed
// to be authenticated before it reaches the runtime.
type Extrinsic[A any, C any] struct {
	Caller A
	Call   C
}

// Block is an ordered batch of extrinsics. Extrinsics execute strictly
// in slice order.
type Block[BN Counter, A any, C any] struct {
	Header     Header[BN]
	Extrinsics []Extrinsic[A, C]
}

// Dispatch routes a (caller, call) pair to the module that owns the
// state the call mutates. Module errors are returned unchanged.
type Dispatch[A any, C any] interface {
	Dispatch(caller A, call C) error
}
