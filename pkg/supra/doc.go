// Package supra is a minimal JSON-RPC client for the Supra ledger. It covers
// what an entry-function caller needs: account and balance lookups, chain id,
// BCS transaction encoding, Ed25519 signing, simulation, submission, and
// waiting for a transaction to reach a terminal status.
//
// A Client is safe for concurrent use. It holds no per-account state, so
// sequence numbers are read fresh for every submission.
package supra
