package supra

import (
	"errors"
	"fmt"
)

var ErrAccountNotFound = errors.New("account not found")

// RPCError reports a non-2xx response from the RPC endpoint.
type RPCError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("supra rpc %s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// TransactionFailedError reports a transaction, or its simulation, that
// reached a non-success terminal status.
type TransactionFailedError struct {
	Hash      string
	Status    TransactionStatus
	VMStatus  string
	Simulated bool
}

func (e *TransactionFailedError) Error() string {
	stage := "transaction"
	if e.Simulated {
		stage = "simulated transaction"
	}
	if e.Hash != "" {
		stage = fmt.Sprintf("%s %s", stage, e.Hash)
	}
	if e.VMStatus != "" {
		return fmt.Sprintf("%s ended with status %s: %s", stage, e.Status, e.VMStatus)
	}
	return fmt.Sprintf("%s ended with status %s", stage, e.Status)
}
