package fees

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// SimulationResult is the outcome of one eth_call round trip against latest
// state. Exactly one of the two payloads is meaningful, discriminated by
// Reverted.
type SimulationResult struct {
	// ReturnData is the call's return payload when execution succeeded.
	ReturnData []byte

	// RevertData is the raw revert payload when execution reverted. It may
	// be empty: some nodes report a revert without carrying data.
	RevertData []byte

	// Reverted reports whether the chain executed the call and rejected it.
	Reverted bool
}

// simulate runs the call against latest state. A revert reported by the node
// is a result, not an error: the round trip worked and the payload is the
// contract's answer. Only failures to complete the round trip surface as
// *TransportError.
func (e *Estimator) simulate(ctx context.Context, msg ethereum.CallMsg) (SimulationResult, error) {
	out, err := e.client.CallContract(ctx, msg, nil)
	if err != nil {
		if data, ok := revertDataFromError(err); ok {
			return SimulationResult{Reverted: true, RevertData: data}, nil
		}
		if isRevertError(err) {
			return SimulationResult{Reverted: true}, nil
		}

		return SimulationResult{}, &TransportError{Op: "eth_call", Err: err}
	}

	return SimulationResult{ReturnData: out}, nil
}

// maxScanDepth bounds the recursive walk through nested error payloads.
const maxScanDepth = 4

// revertDataFromError digs the raw revert payload out of a JSON-RPC error.
// Nodes disagree on where they put it: geth exposes it through the
// rpc.DataError interface, others nest it under "data" or "originalError"
// keys in the error object. The walk unwraps the error chain and scans every
// candidate shape.
func revertDataFromError(err error) ([]byte, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		var de rpc.DataError
		if errors.As(e, &de) {
			if b, ok := scanRevertData(de.ErrorData(), maxScanDepth); ok {
				return b, true
			}
		}
	}

	return nil, false
}

func scanRevertData(v any, depth int) ([]byte, bool) {
	if depth <= 0 || v == nil {
		return nil, false
	}

	decodeHex := func(s string) ([]byte, bool) {
		if strings.HasPrefix(s, "0x") {
			if b, err := hexutil.Decode(s); err == nil {
				return b, true
			}
		}

		return nil, false
	}

	switch t := v.(type) {
	case string:
		return decodeHex(t)
	case []byte:
		return t, true
	case hexutil.Bytes:
		return t, true
	case map[string]any:
		for _, key := range []string{"data", "return", "returnValue"} {
			if s, ok := t[key].(string); ok {
				if b, ok := decodeHex(s); ok {
					return b, true
				}
			}
		}
		if orig, ok := t["originalError"].(map[string]any); ok {
			if b, ok := scanRevertData(orig, depth-1); ok {
				return b, true
			}
		}
		for _, vv := range t {
			if b, ok := scanRevertData(vv, depth-1); ok {
				return b, true
			}
		}
	}

	return nil, false
}

// isRevertError recognizes execution failures that carry no revert payload.
// The JSON-RPC spec assigns code 3 to execution errors; older nodes only
// signal through the message text.
func isRevertError(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == 3 {
		return true
	}

	return strings.Contains(err.Error(), "execution reverted")
}
