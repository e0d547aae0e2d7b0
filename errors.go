package memview

import "github.com/pkg/errors"

// Sentinel errors returned by all operations in this package. Callers should
// match them with errors.Is; the concrete error usually carries additional
// context (the offending index, the capacity that was exceeded, and so on).
var (
	// ErrInvalidArgument reports a nil or empty required input, a
	// non-positive size or count, or a copy that does not fit its
	// source or destination.
	ErrInvalidArgument = errors.New("memview: invalid argument")

	// ErrOutOfRange reports an index or offset outside [0, Len).
	ErrOutOfRange = errors.New("memview: out of range")

	// ErrDisposed reports an operation on an already released Region
	// or already disposed View.
	ErrDisposed = errors.New("memview: use after dispose")
)
