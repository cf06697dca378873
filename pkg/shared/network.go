package shared

import (
	"fmt"
	"strings"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

const (
	TestnetRPCURL = "https://rpc-testnet.supra.com"
	MainnetRPCURL = "https://rpc-mainnet.supra.com"
)

// NormalizeNetwork lower-cases and validates a network name, defaulting to testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// DefaultRPCURL returns the public RPC endpoint for the network.
func DefaultRPCURL(network string) (string, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return "", err
	}

	if normalized == NetworkMainnet {
		return MainnetRPCURL, nil
	}

	return TestnetRPCURL, nil
}
