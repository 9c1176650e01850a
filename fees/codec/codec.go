// Package codec turns call intents (ABI + function name + Go arguments) into
// EVM calldata.
//
// The byte layout is delegated entirely to go-ethereum's accounts/abi
// encoder. The layer on top validates the intent against the ABI and coerces
// loosely typed Go arguments into the exact shapes that encoder expects, so
// callers can pass common Go values (ints, hex strings, addresses) without
// knowing the abi package's type mapping.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ParseABI parses a contract ABI from its JSON representation.
func ParseABI(abiJSON string) (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, &EncodingError{Err: fmt.Errorf("failed to parse ABI JSON: %w", err)}
	}

	return &parsed, nil
}

// EncodeCall encodes a call to functionName with the given arguments into
// calldata: the 4 byte function selector followed by the ABI encoded
// arguments.
//
// Arguments are matched positionally against the function's inputs and
// coerced into the representations the abi encoder expects (see coerceArg for
// the accepted shapes). Encoding is deterministic and performs no I/O. Any
// failure is reported as an *EncodingError and produces no output at all.
func EncodeCall(contractABI *abi.ABI, functionName string, args []any) ([]byte, error) {
	if contractABI == nil {
		return nil, &EncodingError{Function: functionName, Err: errors.New("nil ABI")}
	}

	method, ok := contractABI.Methods[functionName]
	if !ok {
		return nil, &EncodingError{
			Function: functionName,
			Err:      fmt.Errorf("function %q not found in ABI", functionName),
		}
	}
	if len(args) != len(method.Inputs) {
		return nil, &EncodingError{
			Function: functionName,
			Err:      fmt.Errorf("%s expects %d arguments, got %d", method.Sig, len(method.Inputs), len(args)),
		}
	}

	coerced := make([]any, len(args))
	for i, input := range method.Inputs {
		v, err := coerceArg(args[i], input.Type)
		if err != nil {
			desc := input.Type.String()
			if input.Name != "" {
				desc += " " + input.Name
			}

			return nil, &EncodingError{
				Function: functionName,
				Err:      fmt.Errorf("argument %d (%s): %w", i, desc, err),
			}
		}
		coerced[i] = v
	}

	data, err := contractABI.Pack(functionName, coerced...)
	if err != nil {
		return nil, &EncodingError{Function: functionName, Err: err}
	}

	return data, nil
}
