// Package support defines the configuration contract every pallet is
// generic over, plus the block and dispatch shapes shared by the
// runtime.
//
// The embedding application picks concrete types once, at composition
// time. Pallets only ever see these constraints.
package support

import (
	"fmt"
	"strconv"
)

// Counter is the capability set required of block numbers and nonces:
// an unsigned integer whose zero value is zero.
type Counter interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Amount is the capability set required of balances. The zero value of
// an Amount must represent zero.
type Amount[T any] interface {
	comparable
	fmt.Stringer

	// CheckedAdd returns the sum, or false if it does not fit.
	CheckedAdd(T) (T, bool)
	// CheckedSub returns the difference, or false if it would be negative.
	CheckedSub(T) (T, bool)
	IsZero() bool
}

// CheckedAdd adds two counters, reporting false on overflow.
func CheckedAdd[T Counter](a, b T) (T, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckedSub subtracts b from a, reporting false on underflow.
func CheckedSub[T Counter](a, b T) (T, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// U64 is an Amount backed by a uint64.
type U64 uint64

// Amount embeds comparable, so conformance is checked by instantiation.
var _ = isAmount[U64]

func isAmount[T Amount[T]]() {}

func (u U64) CheckedAdd(v U64) (U64, bool) { return CheckedAdd(u, v) }

func (u U64) CheckedSub(v U64) (U64, bool) { return CheckedSub(u, v) }

func (u U64) IsZero() bool { return u == 0 }

func (u U64) String() string { return strconv.FormatUint(uint64(u), 10) }
