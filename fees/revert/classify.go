package revert

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	errorStringSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	panicSelector       = crypto.Keccak256([]byte("Panic(uint256)"))[:4]
)

// Classify turns a raw revert payload and the intent behind the failed call
// into a ContractExecutionError. Matchers run in a fixed order and the first
// match wins; when none matches the payload is preserved raw. Classify never
// fails: every input maps to exactly one reason.
func Classify(revertData []byte, call CallContext) *ContractExecutionError {
	cerr := &ContractExecutionError{
		Address:      call.Address,
		FunctionName: call.FunctionName,
		Args:         call.Args,
		Sender:       call.Sender,
		Reason:       decodeReason(revertData, call.ABI),
	}
	if call.ABI != nil {
		if method, ok := call.ABI.Methods[call.FunctionName]; ok {
			cerr.Signature = method.Sig
		}
	}

	return cerr
}

var matchers = []func(data []byte, contractABI *abi.ABI) (DecodedReason, bool){
	matchErrorString,
	matchPanic,
	matchCustomError,
}

func decodeReason(data []byte, contractABI *abi.ABI) DecodedReason {
	for _, match := range matchers {
		if reason, ok := match(data, contractABI); ok {
			return reason
		}
	}

	return fallbackReason(data)
}

// matchErrorString recognizes the Error(string) shape produced by require and
// revert statements. A payload with the right selector but a malformed tail
// is not an error string; it falls through to the remaining matchers.
func matchErrorString(data []byte, _ *abi.ABI) (DecodedReason, bool) {
	if len(data) < 4 || !bytes.Equal(data[:4], errorStringSelector) {
		return DecodedReason{}, false
	}

	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return DecodedReason{}, false
	}

	return DecodedReason{Kind: ReasonErrorString, Message: reason, Raw: data}, true
}

// matchPanic recognizes compiler generated Panic(uint256) payloads: the
// selector followed by exactly one 32 byte code word.
func matchPanic(data []byte, _ *abi.ABI) (DecodedReason, bool) {
	if len(data) != 36 || !bytes.Equal(data[:4], panicSelector) {
		return DecodedReason{}, false
	}

	code := new(big.Int).SetBytes(data[4:])

	return DecodedReason{Kind: ReasonPanic, Message: panicMessage(code), Raw: data}, true
}

// matchCustomError looks the leading selector up among the errors declared in
// the contract ABI. Payloads whose arguments do not unpack are skipped so the
// raw fallback can still report the selector.
func matchCustomError(data []byte, contractABI *abi.ABI) (DecodedReason, bool) {
	if contractABI == nil || len(data) < 4 {
		return DecodedReason{}, false
	}

	for _, abiErr := range contractABI.Errors {
		if !bytes.Equal(abiErr.ID[:4], data[:4]) {
			continue
		}
		vals, err := abiErr.Inputs.Unpack(data[4:])
		if err != nil {
			continue
		}

		return DecodedReason{
			Kind:    ReasonCustomError,
			Message: fmt.Sprintf("%s(%s)", abiErr.Name, formatValues(vals)),
			Raw:     data,
		}, true
	}

	return DecodedReason{}, false
}

func fallbackReason(data []byte) DecodedReason {
	switch {
	case len(data) == 0:
		return DecodedReason{
			Kind:    ReasonUnknown,
			Message: "execution reverted with no reason",
		}
	case len(data) >= 4:
		return DecodedReason{
			Kind:    ReasonUnknown,
			Message: "execution reverted with unrecognized custom error 0x" + hex.EncodeToString(data[:4]),
			Raw:     data,
		}
	default:
		return DecodedReason{
			Kind:    ReasonUnknown,
			Message: "execution reverted with malformed data 0x" + hex.EncodeToString(data),
			Raw:     data,
		}
	}
}
