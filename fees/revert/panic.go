package revert

import (
	"fmt"
	"math/big"
)

// Solidity panic codes, per the language documentation. The compiler emits
// these for checked failures; contracts never raise them directly.
var panicMessages = map[uint64]string{
	0x00: "generic panic",
	0x01: "assertion failed",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "invalid enum conversion",
	0x22: "invalid storage byte array access",
	0x31: "pop on empty array",
	0x32: "array index out of bounds",
	0x41: "memory allocation overflow",
	0x51: "call to a zero-initialized internal function",
}

func panicMessage(code *big.Int) string {
	if code.IsUint64() {
		if msg, ok := panicMessages[code.Uint64()]; ok {
			return fmt.Sprintf("panic 0x%02x: %s", code.Uint64(), msg)
		}
	}

	return fmt.Sprintf("panic 0x%s: unknown panic code", code.Text(16))
}
