package machine

import (
	"errors"
	"fmt"
)

// ErrInvalidSymbol is matched by errors from Feed when the stream contains a
// value outside [0, 32).
var ErrInvalidSymbol = errors.New("machine: invalid symbol")

// SymbolError reports the first out-of-range value in a stream.
type SymbolError struct {
	Index int
	Value int
}

// Error implements the error interface.
func (e *SymbolError) Error() string {
	return fmt.Sprintf("illegal word %d at index %d in stream", e.Value, e.Index)
}

// Is reports whether target is ErrInvalidSymbol.
func (e *SymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// GroupError wraps a construction failure with the wheel group it came from.
type GroupError struct {
	Group Group
	Err   error
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	return fmt.Sprintf("%s wheels: %v", e.Group, e.Err)
}

// Unwrap returns the underlying rotor error.
func (e *GroupError) Unwrap() error {
	return e.Err
}
