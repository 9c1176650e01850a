// Package gasoracle reads the OP Stack GasPriceOracle predeploy.
//
// Rollups that settle to a data availability layer charge an extra fee for
// publishing the transaction there. The exact formula varies per chain and
// per fork; this package never reimplements it. Every figure is obtained by
// calling the oracle contract itself, which keeps estimates correct across
// fee formula upgrades.
package gasoracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultAddress is the GasPriceOracle predeploy address shared by OP Stack
// chains. See https://docs.optimism.io/chain/addresses
var DefaultAddress = common.HexToAddress("0x420000000000000000000000000000000000000F")

// oracleABIJSON is the subset of the GasPriceOracle interface this package
// uses. getL1Fee and getL1GasUsed take a fully serialized transaction, the
// rest are parameterless views over the oracle's pricing state.
const oracleABIJSON = `[
	{"inputs":[{"internalType":"bytes","name":"_data","type":"bytes"}],"name":"getL1Fee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes","name":"_data","type":"bytes"}],"name":"getL1GasUsed","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"l1BaseFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"baseFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"blobBaseFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"baseFeeScalar","outputs":[{"internalType":"uint32","name":"","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"blobBaseFeeScalar","outputs":[{"internalType":"uint32","name":"","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"pure","type":"function"},
	{"inputs":[],"name":"version","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"isEcotone","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"isFjord","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

// ContractCaller is the read only operation the oracle reader needs from a
// chain client.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader issues view calls against one GasPriceOracle deployment. It is
// immutable after construction and safe for concurrent use.
type Reader struct {
	caller  ContractCaller
	address common.Address
	abi     abi.ABI
}

// NewReader binds a Reader to the oracle at address. Most chains deploy the
// oracle at DefaultAddress.
func NewReader(caller ContractCaller, address common.Address) (*Reader, error) {
	if caller == nil {
		return nil, errors.New("contract caller is required")
	}
	if address == (common.Address{}) {
		return nil, errors.New("oracle address is required")
	}

	parsed, err := abi.JSON(strings.NewReader(oracleABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse GasPriceOracle ABI: %w", err)
	}

	return &Reader{caller: caller, address: address, abi: parsed}, nil
}

// Address returns the oracle deployment this reader is bound to.
func (r *Reader) Address() common.Address {
	return r.address
}

// L1GasUsed reports the amount of L1 gas the chain would charge to publish
// the given serialized transaction.
func (r *Reader) L1GasUsed(ctx context.Context, serializedTx []byte) (*big.Int, error) {
	return r.callBig(ctx, "getL1GasUsed", serializedTx)
}

// L1Fee reports the L1 data fee, in wei, for the given serialized
// transaction.
func (r *Reader) L1Fee(ctx context.Context, serializedTx []byte) (*big.Int, error) {
	return r.callBig(ctx, "getL1Fee", serializedTx)
}

// L1BaseFee reports the oracle's view of the current L1 base fee.
func (r *Reader) L1BaseFee(ctx context.Context) (*big.Int, error) {
	return r.callBig(ctx, "l1BaseFee")
}

// BaseFee reports the L2 base fee.
func (r *Reader) BaseFee(ctx context.Context) (*big.Int, error) {
	return r.callBig(ctx, "baseFee")
}

// BlobBaseFee reports the oracle's view of the current L1 blob base fee.
func (r *Reader) BlobBaseFee(ctx context.Context) (*big.Int, error) {
	return r.callBig(ctx, "blobBaseFee")
}

// BaseFeeScalar reports the base fee scalar applied by the fee formula.
func (r *Reader) BaseFeeScalar(ctx context.Context) (uint32, error) {
	v, err := r.call(ctx, "baseFeeScalar")
	if err != nil {
		return 0, err
	}
	scalar, ok := v.(uint32)
	if !ok {
		return 0, &DecodingError{Method: "baseFeeScalar", Err: fmt.Errorf("unexpected type %T", v)}
	}

	return scalar, nil
}

// BlobBaseFeeScalar reports the blob base fee scalar applied by the fee
// formula.
func (r *Reader) BlobBaseFeeScalar(ctx context.Context) (uint32, error) {
	v, err := r.call(ctx, "blobBaseFeeScalar")
	if err != nil {
		return 0, err
	}
	scalar, ok := v.(uint32)
	if !ok {
		return 0, &DecodingError{Method: "blobBaseFeeScalar", Err: fmt.Errorf("unexpected type %T", v)}
	}

	return scalar, nil
}

// Decimals reports the scaling applied to the oracle's scalar values.
func (r *Reader) Decimals(ctx context.Context) (*big.Int, error) {
	return r.callBig(ctx, "decimals")
}

// Version reports the oracle contract's semantic version string.
func (r *Reader) Version(ctx context.Context) (string, error) {
	v, err := r.call(ctx, "version")
	if err != nil {
		return "", err
	}
	version, ok := v.(string)
	if !ok {
		return "", &DecodingError{Method: "version", Err: fmt.Errorf("unexpected type %T", v)}
	}

	return version, nil
}

// IsEcotone reports whether the chain runs the Ecotone fee formula.
func (r *Reader) IsEcotone(ctx context.Context) (bool, error) {
	return r.callBool(ctx, "isEcotone")
}

// IsFjord reports whether the chain runs the Fjord fee formula.
func (r *Reader) IsFjord(ctx context.Context) (bool, error) {
	return r.callBool(ctx, "isFjord")
}

// call packs and issues one view call, then unpacks the single declared
// return value. A transport or execution failure is passed through wrapped;
// a response that does not match the declared shape is a *DecodingError.
func (r *Reader) call(ctx context.Context, method string, args ...any) (any, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &r.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle call %s failed: %w", method, err)
	}
	if len(out) == 0 {
		return nil, &DecodingError{Method: method, Err: errors.New("empty response")}
	}

	vals, err := r.abi.Unpack(method, out)
	if err != nil {
		return nil, &DecodingError{Method: method, Err: err}
	}
	if len(vals) != 1 {
		return nil, &DecodingError{Method: method, Err: fmt.Errorf("expected a single return value, got %d", len(vals))}
	}

	return vals[0], nil
}

func (r *Reader) callBig(ctx context.Context, method string, args ...any) (*big.Int, error) {
	v, err := r.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, &DecodingError{Method: method, Err: fmt.Errorf("unexpected type %T", v)}
	}
	if n.Sign() < 0 {
		return nil, &DecodingError{Method: method, Err: fmt.Errorf("negative value %s", n)}
	}

	return n, nil
}

func (r *Reader) callBool(ctx context.Context, method string) (bool, error) {
	v, err := r.call(ctx, method)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &DecodingError{Method: method, Err: fmt.Errorf("unexpected type %T", v)}
	}

	return b, nil
}
