// Contains the test setup for the Seth estimator provider.
package provider

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sethTOML is a valid TOML configuration for the Seth client to be used in tests.
const sethTOML = `
artifacts_dir = "artifacts"

[[networks]]
name = "Test"
chain_id = 1000
dial_timeout="1m"
transaction_timeout = "5m"
eip_1559_dynamic_fees = true

# automated gas estimation
gas_price_estimation_enabled = true
gas_price_estimation_blocks = 20
gas_price_estimation_tx_priority = "standard"

# gas limits
transfer_gas_fee = 21_000

# manual settings, used when gas_price_estimation_enabled is false or when it fails
# legacy transactions
gas_price = 150_000_000_000   #150 gwei
# EIP-1559 transactions
gas_fee_cap = 150_000_000_000 #150 gwei
gas_tip_cap = 100_000_000_000  #100 gwei
`

// writeSethConfigFile creates a temporary seth configuration file for testing purposes.
func writeSethConfigFile(t *testing.T) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "seth.toml")

	err := os.WriteFile(configPath, []byte(sethTOML), 0600)
	require.NoError(t, err)

	return configPath
}

// writeInvalidSethConfigFile creates a temporary invalid seth configuration file for testing
// error handling.
func writeInvalidSethConfigFile(t *testing.T) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "bad.toml")

	err := os.WriteFile(configPath, []byte(`not a valid toml`), 0600)
	require.NoError(t, err)

	return configPath
}

// newFakeRPCServer returns a fake RPC server which answers every request with a valid
// `eth_blockNumber` style response. Seth probes several methods while building a client and
// accepts this response for all of them.
//
// When the test is done, the server is closed automatically.
func newFakeRPCServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	})

	srv := httptest.NewServer(handler)

	t.Cleanup(func() {
		srv.Close()
	})

	return srv
}
