package network

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func Test_Config_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    *Config
		wantErr string
	}{
		{
			name: "valid config",
			give: NewConfig([]Network{
				{
					Type:          NetworkTypeMainnet,
					ChainSelector: 1,
					RPCs: []RPC{
						{
							RPCName: "test_rpc",
						},
					},
				},
			}),
		},
		{
			name: "invalid config",
			give: NewConfig([]Network{
				{
					Type:          NetworkTypeMainnet,
					ChainSelector: 1,
				},
			}),
			wantErr: "network 1: at least one RPC is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_Config_MarshalYAML(t *testing.T) {
	t.Parallel()

	networks := []Network{
		{
			Type:          NetworkTypeMainnet,
			ChainSelector: 1,
			RPCs: []RPC{
				{
					RPCName:            "test_rpc",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test.rpc",
					WSURL:              "wss://test.rpc",
				},
			},
			Metadata: map[string]any{
				"stack": "op-stack",
			},
		},
	}

	cfg := NewConfig(networks)

	yamlBytes, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	want := `networks:
    - type: mainnet
      chain_selector: 1
      rpcs:
        - rpc_name: test_rpc
          preferred_url_scheme: http
          http_url: https://test.rpc
          ws_url: wss://test.rpc
      metadata:
        stack: op-stack
`

	assert.YAMLEq(t, want, string(yamlBytes))
}

func Test_Config_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	give := `
networks:
  - type: mainnet
    chain_selector: 1
    rpcs:
      - rpc_name: test_rpc
        preferred_url_scheme: http
        http_url: https://test.rpc
        ws_url: wss://test.rpc
    metadata:
      stack: op-stack
      gas_price_oracle_address: "0x420000000000000000000000000000000000000F"
`

	var cfg Config

	err := yaml.Unmarshal([]byte(give), &cfg)
	require.NoError(t, err)

	assert.Equal(t, Config{
		networks: map[uint64]Network{
			1: {
				Type:          NetworkTypeMainnet,
				ChainSelector: 1,
				RPCs: []RPC{
					{
						RPCName:            "test_rpc",
						PreferredURLScheme: "http",
						HTTPURL:            "https://test.rpc",
						WSURL:              "wss://test.rpc",
					},
				},
				Metadata: map[string]any{
					"stack":                    "op-stack",
					"gas_price_oracle_address": "0x420000000000000000000000000000000000000F",
				},
			},
		},
	}, cfg)
}

func Test_Config_NetworkBySelector(t *testing.T) {
	t.Parallel()

	network := Network{
		Type:          NetworkTypeMainnet,
		ChainSelector: 1,
		RPCs:          []RPC{{RPCName: "test_rpc"}},
	}

	cfg := NewConfig([]Network{network})

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		got, err := cfg.NetworkBySelector(1)
		require.NoError(t, err)
		assert.Equal(t, network, got)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := cfg.NetworkBySelector(404)
		require.EqualError(t, err, "network with selector 404 not found in configuration")
	})
}

func Test_Config_ChainSelectors(t *testing.T) {
	t.Parallel()

	cfg := NewConfig([]Network{
		{ChainSelector: 1},
		{ChainSelector: 2},
	})

	assert.ElementsMatch(t, []uint64{1, 2}, cfg.ChainSelectors())
}

func Test_Config_Merge(t *testing.T) {
	t.Parallel()

	base := NewConfig([]Network{
		{ChainSelector: 1, Type: NetworkTypeMainnet},
		{ChainSelector: 2, Type: NetworkTypeTestnet},
	})

	other := NewConfig([]Network{
		{ChainSelector: 2, Type: NetworkTypeMainnet}, // overwrites
		{ChainSelector: 3, Type: NetworkTypeMainnet},
	})

	base.Merge(other)

	assert.ElementsMatch(t, []uint64{1, 2, 3}, base.ChainSelectors())

	merged, err := base.NetworkBySelector(2)
	require.NoError(t, err)
	assert.Equal(t, NetworkTypeMainnet, merged.Type)
}

func Test_Config_FilterWith(t *testing.T) {
	t.Parallel()

	mainnet := Network{
		Type:          NetworkTypeMainnet,
		ChainSelector: 1,
		Metadata:      map[string]any{"stack": "op-stack"},
	}
	testnet := Network{
		Type:          NetworkTypeTestnet,
		ChainSelector: 2,
		Metadata:      map[string]any{"stack": "op-stack"},
	}
	other := Network{
		Type:          NetworkTypeTestnet,
		ChainSelector: 3,
	}

	cfg := NewConfig([]Network{mainnet, testnet, other})

	t.Run("single filter", func(t *testing.T) {
		t.Parallel()

		got := cfg.FilterWith(TypesFilter(NetworkTypeMainnet))
		assert.ElementsMatch(t, []uint64{1}, got.ChainSelectors())
	})

	t.Run("multiple filters AND together", func(t *testing.T) {
		t.Parallel()

		got := cfg.FilterWith(TypesFilter(NetworkTypeTestnet), StackFilter("op-stack"))
		assert.ElementsMatch(t, []uint64{2}, got.ChainSelectors())
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		t.Parallel()

		got := cfg.FilterWith()
		assert.ElementsMatch(t, []uint64{1, 2, 3}, got.ChainSelectors())
	})
}

func Test_ChainSelectorFilter(t *testing.T) {
	t.Parallel()

	network1 := Network{ChainSelector: 1}
	network2 := Network{ChainSelector: 2}

	tests := []struct {
		name         string
		giveSelector uint64
		giveNetwork  Network
		want         bool
	}{
		{
			name:         "matching chain selector",
			giveSelector: 1,
			giveNetwork:  network1,
			want:         true,
		},
		{
			name:         "non-matching chain selector",
			giveSelector: 1,
			giveNetwork:  network2,
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := ChainSelectorFilter(tt.giveSelector)
			got := filter(tt.giveNetwork)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ChainFamilyFilter(t *testing.T) {
	t.Parallel()

	network := Network{
		Type:          NetworkTypeMainnet,
		ChainSelector: chainsel.TEST_1000.Selector, // EVM
	}

	tests := []struct {
		name        string
		giveFamily  string
		giveNetwork Network
		want        bool
	}{
		{
			name:        "matching EVM family",
			giveFamily:  chainsel.FamilyEVM,
			giveNetwork: network,
			want:        true,
		},
		{
			name:        "does not match EVM family",
			giveFamily:  chainsel.FamilySolana,
			giveNetwork: network,
			want:        false,
		},
		{
			name:       "chain selector does not have family",
			giveFamily: chainsel.FamilyEVM,
			giveNetwork: Network{
				ChainSelector: 999999999999999999, // Non-existent chain selector
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := ChainFamilyFilter(tt.giveFamily)
			got := filter(tt.giveNetwork)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_StackFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveNetwork Network
		want        bool
	}{
		{
			name: "matching stack",
			giveNetwork: Network{
				Metadata: map[string]any{"stack": "op-stack"},
			},
			want: true,
		},
		{
			name: "different stack",
			giveNetwork: Network{
				Metadata: map[string]any{"stack": "arbitrum"},
			},
			want: false,
		},
		{
			name:        "no metadata",
			giveNetwork: Network{},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := StackFilter("op-stack")
			got := filter(tt.giveNetwork)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Config_Load(t *testing.T) {
	t.Parallel()

	var (
		file1 = "./testdata/networks_1.yml"
		file2 = "./testdata/networks_2.yml"

		network1 = Network{
			Type:          "mainnet",
			ChainSelector: 1,
			RPCs: []RPC{
				{
					RPCName:            "test_rpc",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test.rpc",
					WSURL:              "wss://test.rpc",
				},
				{
					RPCName:            "test_rpc2",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test2.rpc",
					WSURL:              "wss://test2.rpc",
				},
			},
			Metadata: map[string]any{
				"stack":                    "op-stack",
				"gas_price_oracle_address": "0x420000000000000000000000000000000000000F",
			},
		}

		network2 = Network{
			Type:          "testnet",
			ChainSelector: 2,
			RPCs: []RPC{
				{
					RPCName:            "test_rpc",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test.rpc",
					WSURL:              "wss://test.rpc",
				},
			},
		}

		network3 = Network{
			Type:          "mainnet",
			ChainSelector: 3,
			Metadata: map[string]any{
				"stack": "op-stack",
			},
			RPCs: []RPC{
				{
					RPCName:            "test_rpc3",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test3.rpc",
					WSURL:              "wss://test3.rpc",
				},
			},
		}

		network4 = Network{
			Type:          "mainnet",
			ChainSelector: 3,
			RPCs: []RPC{
				{
					RPCName:            "test_rpc3",
					PreferredURLScheme: "http",
					HTTPURL:            "https://dup-test3.rpc",
					WSURL:              "wss://dup-test3.rpc",
				},
			},
		}
	)

	tests := []struct {
		name          string
		giveFilePaths []string
		want          *Config
		wantErr       bool
	}{
		{
			name:          "single valid file",
			giveFilePaths: []string{file1},
			want: NewConfig([]Network{
				network1,
				network2,
				network4,
			}),
		},
		{
			name:          "multiple valid files",
			giveFilePaths: []string{file1, file2},
			want: NewConfig([]Network{
				network1,
				network2,
				network3,
			}),
		},
		{
			name:          "non-existent file",
			giveFilePaths: []string{"/non/existent/file.yaml"},
			wantErr:       true,
		},
		{
			name:          "invalid yaml",
			giveFilePaths: []string{"./testdata/invalid_yaml.yaml"},
			wantErr:       true,
		},
		{
			name:          "invalid network",
			giveFilePaths: []string{"./testdata/invalid_network.yaml"},
			wantErr:       true,
		},
		{
			name:          "empty file paths",
			giveFilePaths: []string{},
			want:          NewConfig([]Network{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(tt.giveFilePaths)
			if tt.wantErr {
				require.Error(t, err, "Expected %s error", tt.name)
			} else {
				require.NoError(t, err, "Load() should not return an error, got %v", err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_Load_WithTransforms(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	yamlContent := `
networks:
- type: "mainnet"
  chain_selector: 1
  rpcs:
    - rpc_name: "test_rpc"
      preferred_url_scheme: "http"
      http_url: "https://test.rpc"
      ws_url: "wss://test.rpc"
  metadata:
    stack: "op-stack"
`

	tmpFile := filepath.Join(tmpDir, "test.yaml")
	err := os.WriteFile(tmpFile, []byte(yamlContent), 0600)
	require.NoError(t, err, "Failed to create test file")

	// Simple URL transformer
	transformFunc := func(url string) string {
		return strings.Replace(url, "test", "test2", 1)
	}

	got, err := Load([]string{tmpFile},
		WithHTTPURLTransformer(transformFunc),
		WithWSURLTransformer(transformFunc),
	)
	require.NoError(t, err)

	assert.Equal(t, NewConfig([]Network{
		{
			Type:          "mainnet",
			ChainSelector: 1,
			RPCs: []RPC{
				{
					RPCName:            "test_rpc",
					PreferredURLScheme: "http",
					HTTPURL:            "https://test2.rpc",
					WSURL:              "wss://test2.rpc",
				},
			},
			Metadata: map[string]any{
				"stack": "op-stack",
			},
		},
	}), got)
}
