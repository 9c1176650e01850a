// Package provider constructs ready-to-use estimators from endpoint or
// registry configuration. The RPC provider dials a MultiClient with failover;
// the Seth provider wraps a read-only Seth client for richer tracing.
package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"

	"github.com/smartcontractkit/chainlink-rollup-fees/fees"
	"github.com/smartcontractkit/chainlink-rollup-fees/rpcclient"
)

// RPCEstimatorProviderConfig holds the configuration to initialize the RPCEstimatorProvider.
type RPCEstimatorProviderConfig struct {
	// Required: At least one RPC must be provided to connect to the rollup node.
	RPCs []rpcclient.RPC
	// Optional: GasPriceOracleAddress overrides the default oracle predeploy address for chains
	// that deploy it elsewhere.
	GasPriceOracleAddress *common.Address
	// Optional: ClientOpts are additional options to configure the MultiClient used by the
	// provider. These options are applied to the MultiClient instance created during
	// initialization. You can use this to tune retry behavior for the RPC connections.
	ClientOpts []func(client *rpcclient.MultiClient)
	// Optional: Logger is the logger to use for the provider and the estimator. If not provided,
	// a default logger will be used.
	Logger logger.Logger
}

// validate checks if the RPCEstimatorProviderConfig is valid.
func (c RPCEstimatorProviderConfig) validate() error {
	if len(c.RPCs) == 0 {
		return errors.New("at least one RPC is required")
	}

	return nil
}

// RPCEstimatorProvider provides an estimator that connects to a rollup node via RPC.
type RPCEstimatorProvider struct {
	selector uint64
	config   RPCEstimatorProviderConfig

	estimator *fees.Estimator
}

// NewRPCEstimatorProvider creates a new RPCEstimatorProvider with the given selector and
// configuration.
func NewRPCEstimatorProvider(
	selector uint64, config RPCEstimatorProviderConfig,
) *RPCEstimatorProvider {
	return &RPCEstimatorProvider{
		selector: selector,
		config:   config,
	}
}

// Initialize sets up the estimator with the provided configuration and returns it. Subsequent
// calls return the same estimator.
func (p *RPCEstimatorProvider) Initialize(ctx context.Context) (*fees.Estimator, error) {
	if p.estimator != nil {
		return p.estimator, nil // Already initialized
	}

	// Set up the logger if not provided
	if p.config.Logger == nil {
		lggr, err := logger.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create default logger: %w", err)
		}
		p.config.Logger = lggr
	}

	// Validate the provider configuration
	if err := p.config.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate provider config: %w", err)
	}

	// Get the Chain ID
	chainIDStr, err := chainsel.GetChainIDFromSelector(p.selector)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID from selector %d: %w", p.selector, err)
	}

	chainID, ok := new(big.Int).SetString(chainIDStr, 10)
	if !ok {
		return nil, fmt.Errorf("failed to convert chain ID %s to big.Int", chainIDStr)
	}

	// Setup the client.
	client, err := rpcclient.NewMultiClient(p.config.Logger, rpcclient.RPCConfig{
		ChainSelector: p.selector,
		RPCs:          p.config.RPCs,
	}, p.config.ClientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-client: %w", err)
	}

	opts := []fees.EstimatorOption{fees.WithChainID(chainID)}
	if p.config.GasPriceOracleAddress != nil {
		opts = append(opts, fees.WithGasPriceOracleAddress(*p.config.GasPriceOracleAddress))
	}

	estimator, err := fees.NewEstimator(p.config.Logger, client, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create estimator: %w", err)
	}

	p.estimator = estimator

	return p.estimator, nil
}

// Name returns the name of the RPCEstimatorProvider.
func (*RPCEstimatorProvider) Name() string {
	return "Rollup RPC Estimator Provider"
}

// ChainSelector returns the chain selector of the network managed by this provider.
func (p *RPCEstimatorProvider) ChainSelector() uint64 {
	return p.selector
}

// Estimator returns the estimator managed by this provider. You must call Initialize before
// using this method to ensure the estimator is properly set up.
func (p *RPCEstimatorProvider) Estimator() *fees.Estimator {
	return p.estimator
}
