package provider

import (
	"fmt"

	"github.com/smartcontractkit/chainlink-rollup-fees/config/network"
	"github.com/smartcontractkit/chainlink-rollup-fees/rpcclient"
)

// ConfigFromNetwork converts a registry network entry into an RPC provider configuration,
// carrying over the endpoints and any gas price oracle override from the network metadata.
func ConfigFromNetwork(n network.Network) (RPCEstimatorProviderConfig, error) {
	rpcs := make([]rpcclient.RPC, 0, len(n.RPCs))
	for _, rpcCfg := range n.RPCs {
		pref, err := rpcclient.URLSchemePreferenceFromString(rpcCfg.PreferredURLScheme)
		if err != nil {
			return RPCEstimatorProviderConfig{}, fmt.Errorf(
				"invalid URL scheme preference %s: %w", rpcCfg.PreferredURLScheme, err,
			)
		}

		rpcs = append(rpcs, rpcclient.RPC{
			Name:               rpcCfg.RPCName,
			WSURL:              rpcCfg.WSURL,
			HTTPURL:            rpcCfg.HTTPURL,
			PreferredURLScheme: pref,
		})
	}

	cfg := RPCEstimatorProviderConfig{RPCs: rpcs}

	if addr, ok := n.GasPriceOracleAddress(); ok {
		cfg.GasPriceOracleAddress = &addr
	}

	return cfg, nil
}

// NewRPCEstimatorProviderFromNetwork builds an RPCEstimatorProvider for a registry network
// entry. The provider uses the network's chain selector and endpoints.
func NewRPCEstimatorProviderFromNetwork(n network.Network) (*RPCEstimatorProvider, error) {
	cfg, err := ConfigFromNetwork(n)
	if err != nil {
		return nil, err
	}

	return NewRPCEstimatorProvider(n.ChainSelector, cfg), nil
}
