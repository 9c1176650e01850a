package fees

import (
	"fmt"

	"github.com/smartcontractkit/chainlink-rollup-fees/fees/codec"
	"github.com/smartcontractkit/chainlink-rollup-fees/fees/gasoracle"
	"github.com/smartcontractkit/chainlink-rollup-fees/fees/revert"
)

// Each failure mode of the estimation pipeline maps to exactly one error
// kind, and every kind is matchable with errors.As against this package.
// Aliases re-export the kinds produced by the subpackages so callers only
// deal with one vocabulary.
type (
	// EncodingError is a call intent that could not be turned into calldata.
	// It always surfaces before any network round trip.
	EncodingError = codec.EncodingError

	// DecodingError is a remote response that arrived but did not have the
	// protocol mandated shape.
	DecodingError = gasoracle.DecodingError

	// ContractExecutionError is a call the chain executed and reverted,
	// decoded into a structured reason.
	ContractExecutionError = revert.ContractExecutionError
)

// TransportError indicates a remote round trip that could not be completed:
// connection failures, timeouts, malformed frames or server side errors. It
// is distinct from ContractExecutionError, where the round trip succeeded
// and the contract itself rejected the call.
type TransportError struct {
	// Op names the remote operation that failed, e.g. "eth_call".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failure: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
