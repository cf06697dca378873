package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reliefchain/relief-sdk-go/pkg/supra"
)

func printResult(out io.Writer, format string, headline string, result supra.TransactionResult) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(out, "%s\n", headline)
	fmt.Fprintf(out, "  hash:     %s\n", result.Hash)
	fmt.Fprintf(out, "  status:   %s\n", result.Status)
	fmt.Fprintf(out, "  sender:   %s\n", result.Sender)
	if result.VMStatus != "" {
		fmt.Fprintf(out, "  vm:       %s\n", result.VMStatus)
	}
	if result.GasUsed > 0 {
		fmt.Fprintf(out, "  gas used: %d\n", result.GasUsed)
	}
	return nil
}

func printBalance(out io.Writer, format string, address string, balance uint64) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Address string `json:"address"`
			Balance uint64 `json:"balance"`
		}{Address: address, Balance: balance})
	}

	fmt.Fprintf(out, "Balance: %d SupraCoins\n", balance)
	return nil
}
