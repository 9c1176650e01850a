package fees

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/chainlink-rollup-fees/fees/revert"
)

// ContractCall describes one contract call to estimate: which contract,
// which function and with what arguments. Values are read, never mutated, so
// a ContractCall can be shared across goroutines and reused across
// estimations.
type ContractCall struct {
	// Address is the contract to call.
	Address common.Address

	// ABI is the contract interface, including its declared custom errors.
	// Parse one with codec.ParseABI or reuse a generated binding's ABI.
	ABI *abi.ABI

	// FunctionName selects the function to encode, by its Solidity name.
	FunctionName string

	// Args are matched positionally against the function's inputs.
	Args []any

	// Sender is the account the call is simulated from. Optional; the zero
	// address when absent.
	Sender *common.Address

	// Value is the wei amount sent with the call. Optional.
	Value *big.Int
}

func (c ContractCall) validate() error {
	if c.Address == (common.Address{}) {
		return errors.New("contract address is required")
	}
	if c.ABI == nil {
		return errors.New("contract ABI is required")
	}
	if c.FunctionName == "" {
		return errors.New("function name is required")
	}
	if c.Value != nil && c.Value.Sign() < 0 {
		return errors.New("value must not be negative")
	}

	return nil
}

// CallSpec is a pre-encoded call: raw calldata plus the envelope fields the
// transaction would carry. Use it when the calldata is already in hand and no
// ABI round trip is wanted.
type CallSpec struct {
	// To is the call target. Nil estimates a contract creation.
	To *common.Address

	// Data is the raw calldata, or the init code for a creation.
	Data []byte

	// Sender is the account the call is simulated from. Optional.
	Sender *common.Address

	// Value is the wei amount sent with the call. Optional.
	Value *big.Int
}

func (s CallSpec) validate() error {
	if s.To == nil && len(s.Data) == 0 {
		return errors.New("either a call target or calldata is required")
	}
	if s.Value != nil && s.Value.Sign() < 0 {
		return errors.New("value must not be negative")
	}

	return nil
}

func (s CallSpec) callMsg() ethereum.CallMsg {
	msg := ethereum.CallMsg{To: s.To, Data: s.Data, Value: s.Value}
	if s.Sender != nil {
		msg.From = *s.Sender
	}

	return msg
}

func (s CallSpec) revertContext() revert.CallContext {
	cctx := revert.CallContext{Sender: s.Sender}
	if s.To != nil {
		cctx.Address = *s.To
	}

	return cctx
}
