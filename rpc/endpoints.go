package rpc

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Endpoint is a named pair of node URLs: the HTTP JSON-RPC entry and the
// WebSocket entry for push subscriptions.
type Endpoint struct {
	Name string
	RPC  string
	WS   string
}

var (
	MainnetBeta = Endpoint{
		Name: "mainnet-beta",
		RPC:  "https://api.mainnet-beta.solana.com",
		WS:   "wss://api.mainnet-beta.solana.com",
	}
	Testnet = Endpoint{
		Name: "testnet",
		RPC:  "https://api.testnet.solana.com",
		WS:   "wss://api.testnet.solana.com",
	}
	Devnet = Endpoint{
		Name: "devnet",
		RPC:  "https://api.devnet.solana.com",
		WS:   "wss://api.devnet.solana.com",
	}
)

// EndpointFromEnv builds an Endpoint from the RPC_URL and WS_URL environment
// variables, loading a .env file first when one is present. RPC_URL is
// required; WS_URL may be empty when no subscriptions are needed.
func EndpointFromEnv() (Endpoint, error) {
	// a missing .env is fine, a broken one is not
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Endpoint{}, errors.Wrap(err, "load .env")
	}

	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		return Endpoint{}, errors.New("RPC_URL is not set")
	}
	return Endpoint{
		Name: "custom",
		RPC:  rpcURL,
		WS:   os.Getenv("WS_URL"),
	}, nil
}
