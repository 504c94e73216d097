package gatesim

import "github.com/pkg/errors"

// Sentinel error kinds surfaced by the core (spec §7). Wrap these with
// github.com/pkg/errors to attach call-site context; compare with
// errors.Cause or errors.Is against the sentinel.
var (
	// ErrUnknownPart is returned when a part number is not in the catalog.
	ErrUnknownPart = errors.New("unknown part number")
	// ErrDuplicateInstance is returned when an instance id is reused.
	ErrDuplicateInstance = errors.New("duplicate instance id")
	// ErrUnknownInstance is returned when an instance id has not been added.
	ErrUnknownInstance = errors.New("unknown instance id")
	// ErrInvalidPin is returned for pin numbers outside 1..14 or not
	// declared for the part. This is a programmer error, not a recoverable
	// condition.
	ErrInvalidPin = errors.New("invalid pin")
	// ErrNotReady is returned by Run when the circuit is nil or fails
	// validation.
	ErrNotReady = errors.New("circuit not ready")
)

// VectorMismatch describes one failed comparison within a vector; it is
// never fatal and is rolled up into a Result.
type VectorMismatch struct {
	Signal   string
	Expected LogicLevel
	Got      LogicLevel
}

func (m VectorMismatch) Error() string {
	return "signal " + m.Signal + ": expected " + m.Expected.String() + ", got " + m.Got.String()
}
