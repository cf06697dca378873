// The Relief SDK for Go manages disaster relief centers on the Supra ledger.
// It builds, signs, and submits entry function transactions against the
// relief_center_management Move module and reads account balances through
// the Supra RPC API.
//
// # Packages
//
//   - pkg/relief: relief operations and their typed errors
//   - pkg/supra: Supra RPC client, BCS encoding, account derivation, signing
//   - pkg/transfer: the two_by_two split transfer module
//   - pkg/shared: network defaults, environment configuration, logging
//
// # Command line
//
// cmd/reliefctl exposes every relief operation as a subcommand.
//
// # Installation
//
//	go get github.com/reliefchain/relief-sdk-go@latest
package relief_sdk_go
