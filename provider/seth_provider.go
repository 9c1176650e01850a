package provider

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/smartcontractkit/chainlink-testing-framework/seth"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"

	"github.com/smartcontractkit/chainlink-rollup-fees/fees"
)

// SethEstimatorProviderConfig holds the configuration to initialize the SethEstimatorProvider.
type SethEstimatorProviderConfig struct {
	// Required: RPCURL is the HTTP URL of the rollup node to connect to.
	RPCURL string
	// Optional: ConfigFilePath is the path to a Seth TOML configuration file. When set, the Seth
	// client is built from this file instead of the defaults.
	ConfigFilePath string
	// Optional: GethWrapperDirs are the paths to the geth wrapper directories. Seth uses these to
	// decode custom errors from contract bindings when a simulation reverts.
	GethWrapperDirs []string
	// Optional: GasPriceOracleAddress overrides the default oracle predeploy address for chains
	// that deploy it elsewhere.
	GasPriceOracleAddress *common.Address
	// Optional: Logger is the logger to use for the provider and the estimator. If not provided,
	// a default logger will be used.
	Logger logger.Logger
}

// validate checks if the SethEstimatorProviderConfig is valid.
func (c SethEstimatorProviderConfig) validate() error {
	if c.RPCURL == "" {
		return errors.New("an RPC URL is required")
	}

	return nil
}

// SethEstimatorProvider provides an estimator backed by a Seth client. Seth traces reverted
// simulations, which makes it a better fit than the plain RPC provider when debugging why a
// candidate transaction fails.
type SethEstimatorProvider struct {
	selector uint64
	config   SethEstimatorProviderConfig

	client    *seth.Client
	estimator *fees.Estimator
}

// NewSethEstimatorProvider creates a new SethEstimatorProvider with the given selector and
// configuration.
func NewSethEstimatorProvider(
	selector uint64, config SethEstimatorProviderConfig,
) *SethEstimatorProvider {
	return &SethEstimatorProvider{
		selector: selector,
		config:   config,
	}
}

// Initialize sets up the Seth client and the estimator and returns the estimator. Subsequent
// calls return the same estimator.
func (p *SethEstimatorProvider) Initialize(ctx context.Context) (*fees.Estimator, error) {
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

	chainID, err := strconv.ParseUint(chainIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chain ID %s: %w", chainIDStr, err)
	}

	client, err := newSethClient(
		p.config.RPCURL, chainID, p.config.GethWrapperDirs, p.config.ConfigFilePath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create seth client: %w", err)
	}

	opts := []fees.EstimatorOption{
		fees.WithChainID(new(big.Int).SetUint64(chainID)),
	}
	if p.config.GasPriceOracleAddress != nil {
		opts = append(opts, fees.WithGasPriceOracleAddress(*p.config.GasPriceOracleAddress))
	}

	// The raw ethclient underneath Seth serves the estimator. Seth keeps tracing every call
	// made through it, including the simulations the estimator issues.
	estimator, err := fees.NewEstimator(p.config.Logger, client.Client, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create estimator: %w", err)
	}

	p.client = client
	p.estimator = estimator

	return p.estimator, nil
}

// Name returns the name of the SethEstimatorProvider.
func (*SethEstimatorProvider) Name() string {
	return "Rollup Seth Estimator Provider"
}

// ChainSelector returns the chain selector of the network managed by this provider.
func (p *SethEstimatorProvider) ChainSelector() uint64 {
	return p.selector
}

// Estimator returns the estimator managed by this provider. You must call Initialize before
// using this method to ensure the estimator is properly set up.
func (p *SethEstimatorProvider) Estimator() *fees.Estimator {
	return p.estimator
}

// SethClient returns the underlying Seth client. It is nil until Initialize succeeds. Use it to
// inspect traces of reverted simulations.
func (p *SethEstimatorProvider) SethClient() *seth.Client {
	return p.client
}
