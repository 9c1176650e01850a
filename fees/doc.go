// Package fees estimates the L1 data publishing cost of contract calls
// submitted through OP Stack style rollups.
//
// A rollup transaction pays twice: once for L2 execution and once for
// publishing its bytes to the data availability layer. The second component
// is invisible to eth_estimateGas. The Estimator prices it by encoding the
// call, dry running it against latest state and asking the chain's
// GasPriceOracle predeploy to price the serialized transaction, so the fee
// formula always matches what the chain actually charges.
//
//	client, _ := ethclient.DialContext(ctx, rpcURL)
//	estimator, _ := fees.NewEstimator(lggr, client)
//	l1Gas, err := estimator.EstimateContractL1Gas(ctx, fees.ContractCall{
//		Address:      tokenAddress,
//		ABI:          tokenABI,
//		FunctionName: "transfer",
//		Args:         []any{recipient, amount},
//	})
//
// Failures are typed: *EncodingError before any round trip, *TransportError
// when a round trip cannot complete, *ContractExecutionError when the dry
// run reverts (with the decoded reason attached) and *DecodingError when the
// oracle answers with a malformed response.
package fees
