// Package shared provides common utilities used across the Relief Center
// SDK for Go. It includes network normalization, operator environment
// variable loading, Ed25519 private key parsing, and logger construction.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations with the
// Supra ledger.
//
// # Environment Variables
//
// Operator settings are read from the process environment, falling back to
// the first .env file found in the working directory or its parents:
//
//   - SUPRA_NETWORK (or NETWORK): mainnet or testnet, default testnet
//   - SUPRA_PRIVATE_KEY (or PRIVATE_KEY): hex Ed25519 private key
//   - SUPRA_RPC_URL: RPC endpoint override
//   - RELIEF_MODULE_ADDRESS: relief center module address override
//
// Network-scoped variants such as TESTNET_SUPRA_PRIVATE_KEY take precedence
// over the unscoped names for the selected network.
package shared
