package fees

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcontractkit/chainlink-common/pkg/logger"

	"github.com/smartcontractkit/chainlink-rollup-fees/fees/codec"
	"github.com/smartcontractkit/chainlink-rollup-fees/fees/gasoracle"
	"github.com/smartcontractkit/chainlink-rollup-fees/fees/revert"
)

// OnchainClient is the read only JSON-RPC surface the estimator needs. Both
// *ethclient.Client and *rpcclient.MultiClient satisfy it.
type OnchainClient interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// Estimator prices the L1 data publishing component of rollup transactions.
// It is immutable after construction and safe for concurrent use; every
// method honors context cancellation and performs no retries of its own.
type Estimator struct {
	lggr          logger.Logger
	client        OnchainClient
	oracle        *gasoracle.Reader
	oracleAddress common.Address
	chainID       *big.Int
}

// EstimatorOption configures an Estimator during construction.
type EstimatorOption func(*Estimator)

// WithGasPriceOracleAddress overrides the GasPriceOracle deployment address.
// Chains that do not use the standard predeploy address need this.
func WithGasPriceOracleAddress(address common.Address) EstimatorOption {
	return func(e *Estimator) { e.oracleAddress = address }
}

// WithChainID sets the chain ID serialized into the envelope the oracle
// prices. Optional; the envelope length barely depends on it.
func WithChainID(chainID *big.Int) EstimatorOption {
	return func(e *Estimator) { e.chainID = chainID }
}

// NewEstimator builds an Estimator over the given client. By default the
// GasPriceOracle is expected at the standard OP Stack predeploy address.
func NewEstimator(lggr logger.Logger, client OnchainClient, opts ...EstimatorOption) (*Estimator, error) {
	if lggr == nil {
		return nil, errors.New("logger is required")
	}
	if client == nil {
		return nil, errors.New("onchain client is required")
	}

	e := &Estimator{
		lggr:          lggr,
		client:        client,
		oracleAddress: gasoracle.DefaultAddress,
	}
	for _, opt := range opts {
		opt(e)
	}

	oracle, err := gasoracle.NewReader(client, e.oracleAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create gas price oracle reader: %w", err)
	}
	e.oracle = oracle

	return e, nil
}

// GasPriceOracle exposes the bound oracle reader for direct parameter reads
// (base fees, scalars, fork probes).
func (e *Estimator) GasPriceOracle() *gasoracle.Reader {
	return e.oracle
}

// EstimateContractL1Gas reports the amount of L1 gas the chain would charge
// to publish a transaction performing the given contract call.
//
// The pipeline is encode, simulate, then ask the oracle: the call is ABI
// encoded, dry run against latest state, and only if the dry run succeeds is
// the oracle asked to price the serialized transaction. A dry run revert
// short circuits the pipeline and surfaces as *ContractExecutionError with
// the decoded reason.
func (e *Estimator) EstimateContractL1Gas(ctx context.Context, call ContractCall) (*big.Int, error) {
	spec, cctx, err := e.prepare(call)
	if err != nil {
		return nil, err
	}

	return e.estimateL1(ctx, spec, cctx, false)
}

// EstimateContractL1Fee reports the L1 data fee, in wei, for a transaction
// performing the given contract call. Same pipeline and failure semantics as
// EstimateContractL1Gas.
func (e *Estimator) EstimateContractL1Fee(ctx context.Context, call ContractCall) (*big.Int, error) {
	spec, cctx, err := e.prepare(call)
	if err != nil {
		return nil, err
	}

	return e.estimateL1(ctx, spec, cctx, true)
}

// EstimateContractTotalGas reports L2 execution gas plus L1 data gas for the
// given contract call.
func (e *Estimator) EstimateContractTotalGas(ctx context.Context, call ContractCall) (*big.Int, error) {
	spec, cctx, err := e.prepare(call)
	if err != nil {
		return nil, err
	}

	return e.estimateTotalGas(ctx, spec, cctx)
}

// EstimateContractTotalFee reports the full cost, in wei, of the given
// contract call: execution gas priced at the node's suggested gas price plus
// the L1 data fee.
func (e *Estimator) EstimateContractTotalFee(ctx context.Context, call ContractCall) (*big.Int, error) {
	spec, cctx, err := e.prepare(call)
	if err != nil {
		return nil, err
	}

	return e.estimateTotalFee(ctx, spec, cctx)
}

// EstimateL1Gas is EstimateContractL1Gas for pre-encoded calldata.
func (e *Estimator) EstimateL1Gas(ctx context.Context, spec CallSpec) (*big.Int, error) {
	if err := spec.validate(); err != nil {
		return nil, &EncodingError{Err: err}
	}

	return e.estimateL1(ctx, spec, spec.revertContext(), false)
}

// EstimateL1Fee is EstimateContractL1Fee for pre-encoded calldata.
func (e *Estimator) EstimateL1Fee(ctx context.Context, spec CallSpec) (*big.Int, error) {
	if err := spec.validate(); err != nil {
		return nil, &EncodingError{Err: err}
	}

	return e.estimateL1(ctx, spec, spec.revertContext(), true)
}

// EstimateTotalGas is EstimateContractTotalGas for pre-encoded calldata.
func (e *Estimator) EstimateTotalGas(ctx context.Context, spec CallSpec) (*big.Int, error) {
	if err := spec.validate(); err != nil {
		return nil, &EncodingError{Err: err}
	}

	return e.estimateTotalGas(ctx, spec, spec.revertContext())
}

// EstimateTotalFee is EstimateContractTotalFee for pre-encoded calldata.
func (e *Estimator) EstimateTotalFee(ctx context.Context, spec CallSpec) (*big.Int, error) {
	if err := spec.validate(); err != nil {
		return nil, &EncodingError{Err: err}
	}

	return e.estimateTotalFee(ctx, spec, spec.revertContext())
}

// prepare validates the intent and encodes it into a CallSpec plus the
// context the revert classifier needs. No I/O happens here; every failure is
// an *EncodingError.
func (e *Estimator) prepare(call ContractCall) (CallSpec, revert.CallContext, error) {
	if err := call.validate(); err != nil {
		return CallSpec{}, revert.CallContext{}, &EncodingError{Function: call.FunctionName, Err: err}
	}

	calldata, err := codec.EncodeCall(call.ABI, call.FunctionName, call.Args)
	if err != nil {
		return CallSpec{}, revert.CallContext{}, err
	}

	to := call.Address
	spec := CallSpec{To: &to, Data: calldata, Sender: call.Sender, Value: call.Value}
	cctx := revert.CallContext{
		ABI:          call.ABI,
		FunctionName: call.FunctionName,
		Args:         call.Args,
		Sender:       call.Sender,
		Address:      call.Address,
	}

	return spec, cctx, nil
}

// estimateL1 runs the shared tail of the pipeline: simulate, serialize, ask
// the oracle. wantFee selects the getL1Fee leg over getL1GasUsed.
func (e *Estimator) estimateL1(ctx context.Context, spec CallSpec, cctx revert.CallContext, wantFee bool) (*big.Int, error) {
	sim, err := e.simulate(ctx, spec.callMsg())
	if err != nil {
		return nil, err
	}
	if sim.Reverted {
		cerr := revert.Classify(sim.RevertData, cctx)
		e.lggr.Debugw("call reverted during simulation",
			"to", spec.To, "reason", cerr.Reason.Kind)

		return nil, cerr
	}

	serialized, err := gasoracle.SerializeCall(spec.To, spec.Value, spec.Data, e.chainID)
	if err != nil {
		return nil, &EncodingError{Function: cctx.FunctionName, Err: err}
	}

	op, read := "getL1GasUsed", e.oracle.L1GasUsed
	if wantFee {
		op, read = "getL1Fee", e.oracle.L1Fee
	}
	est, err := read(ctx, serialized)
	if err != nil {
		return nil, wrapOracleErr(op, err)
	}

	e.lggr.Debugw("estimated L1 component", "op", op, "to", spec.To, "estimate", est)

	return est, nil
}

func (e *Estimator) estimateTotalGas(ctx context.Context, spec CallSpec, cctx revert.CallContext) (*big.Int, error) {
	l1Gas, err := e.estimateL1(ctx, spec, cctx, false)
	if err != nil {
		return nil, err
	}
	execGas, err := e.executionGas(ctx, spec, cctx)
	if err != nil {
		return nil, err
	}

	return new(big.Int).Add(l1Gas, new(big.Int).SetUint64(execGas)), nil
}

func (e *Estimator) estimateTotalFee(ctx context.Context, spec CallSpec, cctx revert.CallContext) (*big.Int, error) {
	l1Fee, err := e.estimateL1(ctx, spec, cctx, true)
	if err != nil {
		return nil, err
	}
	execGas, err := e.executionGas(ctx, spec, cctx)
	if err != nil {
		return nil, err
	}
	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &TransportError{Op: "eth_gasPrice", Err: err}
	}

	execFee := new(big.Int).Mul(new(big.Int).SetUint64(execGas), gasPrice)

	return execFee.Add(execFee, l1Fee), nil
}

// executionGas estimates the L2 execution component. A revert reported here
// classifies the same way a simulation revert does.
func (e *Estimator) executionGas(ctx context.Context, spec CallSpec, cctx revert.CallContext) (uint64, error) {
	gas, err := e.client.EstimateGas(ctx, spec.callMsg())
	if err != nil {
		if data, ok := revertDataFromError(err); ok {
			return 0, revert.Classify(data, cctx)
		}
		if isRevertError(err) {
			return 0, revert.Classify(nil, cctx)
		}

		return 0, &TransportError{Op: "eth_estimateGas", Err: err}
	}

	return gas, nil
}

// wrapOracleErr keeps *DecodingError intact and folds everything else from
// the oracle leg into *TransportError.
func wrapOracleErr(op string, err error) error {
	var decErr *DecodingError
	if errors.As(err, &decErr) {
		return err
	}

	return &TransportError{Op: op, Err: err}
}
