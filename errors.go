package rsm

import (
	"errors"
	"fmt"
)

// HaltError signals an invariant violation the runtime has no policy
// for, such as the block number or a nonce exhausting its width.
//
// Pallets raise it by panicking. The application recovers it at the
// ExecuteBlock boundary and returns it; the server then refuses every
// further sequential call.
type HaltError struct {
	Reason string
	Height uint64
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("HALT at height %d: %s", e.Height, e.Reason)
}

// NewHaltError creates a new HaltError.
func NewHaltError(height uint64, reason string) *HaltError {
	return &HaltError{Height: height, Reason: reason}
}

// IsHalt checks whether an error is a HaltError and returns it.
func IsHalt(err error) (*HaltError, bool) {
	var h *HaltError
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}

// RecoverHalt converts a recovered panic value into a HaltError.
// Any other panic value is re-raised.
func RecoverHalt(r any) *HaltError {
	if r == nil {
		return nil
	}
	if h, ok := r.(*HaltError); ok {
		return h
	}
	panic(r)
}
