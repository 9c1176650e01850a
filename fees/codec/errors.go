package codec

import "fmt"

// EncodingError indicates that a call intent could not be turned into
// calldata: an unknown function, an argument count mismatch, an incompatible
// argument type or an out of range value. It is always produced before any
// network round trip.
type EncodingError struct {
	// Function is the function name the caller asked for, when known.
	Function string
	Err      error
}

func (e *EncodingError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("failed to encode call: %s", e.Err)
	}

	return fmt.Sprintf("failed to encode call to %s: %s", e.Function, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
