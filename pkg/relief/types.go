package relief

import (
	"context"

	"github.com/reliefchain/relief-sdk-go/pkg/supra"
	"github.com/rs/zerolog"
)

const (
	// DefaultModuleAddress is the address the relief center module was
	// published under on testnet.
	DefaultModuleAddress = "b29ec903259f02d5abac73db83ed72f96a1124d9e1eec350cac69c998b92256b"
	ModuleName           = "relief_center_management"
)

type Operation string

const (
	OperationCreateManagement Operation = "create_management"
	OperationAddCenter        Operation = "add_center"
	OperationDonateToCenter   Operation = "donate_to_center"
	OperationGetBalance       Operation = "get_balance"
)

type AddCenterParams struct {
	Name     string
	Location string
	City     string
	State    string
}

type DonateParams struct {
	CenterID uint64
	Amount   uint64
}

// Ledger is the connection handle the Client submits through. Its lifecycle
// belongs to the caller.
type Ledger interface {
	SendEntryFunction(
		ctx context.Context,
		account *supra.Account,
		payload supra.EntryFunctionPayload,
		options supra.SubmitOptions,
	) (supra.TransactionResult, error)
	AccountExists(ctx context.Context, address string) (bool, error)
	GetAccountBalance(ctx context.Context, address string) (supra.Balance, error)
}

type ClientConfig struct {
	// ModuleAddress defaults to DefaultModuleAddress.
	ModuleAddress string
	// SubmitOptions defaults to simulating and waiting for every transaction.
	SubmitOptions *supra.SubmitOptions
	Logger        *zerolog.Logger
	Metrics       *Metrics
}

// DefaultSubmitOptions simulates before submitting and waits for finality.
func DefaultSubmitOptions() supra.SubmitOptions {
	return supra.SubmitOptions{
		WaitForTransaction:  true,
		SimulateTransaction: true,
	}
}
