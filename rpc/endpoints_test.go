package rpc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedEndpoints(t *testing.T) {
	assert.Equal(t, "https://api.mainnet-beta.solana.com", MainnetBeta.RPC)
	assert.Equal(t, "wss://api.mainnet-beta.solana.com", MainnetBeta.WS)
	assert.Equal(t, "https://api.testnet.solana.com", Testnet.RPC)
	assert.Equal(t, "https://api.devnet.solana.com", Devnet.RPC)
}

func TestEndpointFromEnv(t *testing.T) {
	t.Setenv("RPC_URL", "https://rpc.example.com")
	t.Setenv("WS_URL", "wss://rpc.example.com")

	endpoint, err := EndpointFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com", endpoint.RPC)
	assert.Equal(t, "wss://rpc.example.com", endpoint.WS)
}

func TestEndpointFromEnvMissingRPCURL(t *testing.T) {
	t.Setenv("RPC_URL", "")
	t.Setenv("WS_URL", "")

	_, err := EndpointFromEnv()
	require.Error(t, err)
}

func TestEndpointFromEnvMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("no separator on this line\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	t.Setenv("RPC_URL", "https://rpc.example.com")
	_, err = EndpointFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}
