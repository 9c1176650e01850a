package gasoracle

import "fmt"

// DecodingError indicates the oracle answered a call but the response did not
// have the declared shape: an empty body, a short word or a value that fails
// to unpack. It is distinct from a transport failure, where no usable
// response arrived at all.
type DecodingError struct {
	// Method is the oracle view function whose response was malformed.
	Method string
	Err    error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %s", e.Method, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }
