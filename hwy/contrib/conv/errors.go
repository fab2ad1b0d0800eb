package conv

import "fmt"

// Kind classifies convolution failures.
type Kind int

const (
	// KindInvalidArgument marks a precondition violation: a nil matrix, a
	// non-positive dimension, or a buffer that does not match its dimensions.
	KindInvalidArgument Kind = iota + 1

	// KindShapeMismatch marks a destination whose shape differs from the
	// feature map.
	KindShapeMismatch

	// KindAllocation marks a failure to allocate the output or its padding.
	KindAllocation
)

// String returns the kind as a string.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindShapeMismatch:
		return "shape mismatch"
	case KindAllocation:
		return "allocation"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every engine.
type Error struct {
	Kind Kind
	Op   string // Operation that failed
	Msg  string // Human-readable detail
	Err  error  // Underlying error if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conv: %s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("conv: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap allows error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind, so errors.Is(err, ErrAllocation)
// holds for every allocation failure regardless of operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == "" && t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Msg: "invalid argument"}
	ErrShapeMismatch   = &Error{Kind: KindShapeMismatch, Msg: "shape mismatch"}
	ErrAllocation      = &Error{Kind: KindAllocation, Msg: "allocation failed"}
)

func newError(kind Kind, op string, err error, format string, args ...any) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}
