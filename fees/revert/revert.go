// Package revert decodes EVM revert payloads into structured errors.
//
// A reverting contract call surfaces as an opaque byte payload. This package
// classifies that payload through an ordered matcher chain (standard
// Error(string) reverts, compiler generated Panic(uint256) codes, custom
// errors declared in the contract ABI, then a raw fallback) and wraps the
// result together with the call intent into a ContractExecutionError.
// Classification is deterministic and total: the same payload always yields
// the same reason, and every payload yields one.
package revert

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ReasonKind identifies which matcher recognized a revert payload.
type ReasonKind string

const (
	// ReasonErrorString is a standard Error(string) revert, the shape produced
	// by require(cond, "message") and revert("message").
	ReasonErrorString ReasonKind = "error string"

	// ReasonPanic is a compiler generated Panic(uint256).
	ReasonPanic ReasonKind = "panic"

	// ReasonCustomError is a user defined error declared in the contract ABI.
	ReasonCustomError ReasonKind = "custom error"

	// ReasonUnknown covers empty payloads and payloads no matcher recognized.
	ReasonUnknown ReasonKind = "unknown"
)

// DecodedReason is the outcome of classifying one revert payload.
type DecodedReason struct {
	Kind    ReasonKind
	Message string
	// Raw is the original revert payload, nil when the call reverted without
	// data.
	Raw []byte
}

// CallContext carries the intent behind a failed call so the produced error
// can reference the function, arguments and sender involved. All fields are
// optional; a raw calldata submission has no ABI or function name.
type CallContext struct {
	ABI          *abi.ABI
	FunctionName string
	Args         []any
	Sender       *common.Address
	Address      common.Address
}

// ContractExecutionError is a contract call that the chain accepted,
// executed and reverted. It is not a transport failure: the round trip
// succeeded and the revert payload is the contract's answer.
type ContractExecutionError struct {
	Address      common.Address
	FunctionName string
	// Signature is the canonical function signature, e.g.
	// "transfer(address,uint256)", when the ABI resolves it.
	Signature string
	Args      []any
	Sender    *common.Address
	Reason    DecodedReason
}

func (e *ContractExecutionError) Error() string {
	var b strings.Builder
	b.WriteString("contract call reverted: ")
	b.WriteString(e.Reason.Message)
	b.WriteString("\n")

	if e.Signature != "" {
		fmt.Fprintf(&b, "\nfunction: %s", e.Signature)
	} else if e.FunctionName != "" {
		fmt.Fprintf(&b, "\nfunction: %s", e.FunctionName)
	}
	if e.FunctionName != "" {
		fmt.Fprintf(&b, "\nargs:     (%s)", formatValues(e.Args))
	}
	if e.Sender != nil {
		fmt.Fprintf(&b, "\nsender:   %s", e.Sender.Hex())
	}
	if e.Address != (common.Address{}) {
		fmt.Fprintf(&b, "\ncontract: %s", e.Address.Hex())
	}

	fmt.Fprintf(&b, "\n\ndocs: %s", docsURL)
	fmt.Fprintf(&b, "\nversion: %s", libraryVersion())

	return b.String()
}

const docsURL = "https://github.com/smartcontractkit/chainlink-rollup-fees#revert-decoding"

func formatValues(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatValue(v)
	}

	return strings.Join(parts, ", ")
}

// formatValue renders a single decoded or caller supplied value. Addresses
// and byte blobs render as hex, strings are quoted, composites recurse.
func formatValue(v any) string {
	switch vv := v.(type) {
	case common.Address:
		return vv.Hex()
	case *big.Int:
		if vv == nil {
			return "<nil>"
		}

		return vv.String()
	case []byte:
		return hexutil.Encode(vv)
	case string:
		return strconv.Quote(vv)
	}

	rv := reflect.ValueOf(v)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)

			return hexutil.Encode(b)
		}

		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}

		return "[" + strings.Join(parts, ", ") + "]"
	}

	return fmt.Sprintf("%v", v)
}
