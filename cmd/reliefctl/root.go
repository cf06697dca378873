package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reliefchain/relief-sdk-go/pkg/relief"
	"github.com/reliefchain/relief-sdk-go/pkg/shared"
	"github.com/reliefchain/relief-sdk-go/pkg/supra"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	network       string
	rpcURL        string
	moduleAddress string
	privateKey    string
	output        string
	logLevel      string
	logFormat     string
	noWait        bool
	noSimulate    bool
	timeout       time.Duration
}

// cliSession holds what one command invocation needs. Nothing outlives it.
type cliSession struct {
	settings shared.OperatorConfig
	logger   zerolog.Logger
	ledger   *supra.Client
	relief   *relief.Client
	options  supra.SubmitOptions
}

// newRootCmd wires the CLI surface. Persistent flags override the
// environment; subcommands map one-to-one onto relief operations.
func newRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "reliefctl",
		Short:         "Relief center management on the Supra ledger",
		Long:          "Create the management resource, register relief centers, donate, and read balances.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&flags.network, "network", "", "Network: testnet|mainnet (overrides SUPRA_NETWORK)")
	rootCmd.PersistentFlags().StringVar(&flags.rpcURL, "rpc-url", "", "RPC endpoint (overrides SUPRA_RPC_URL)")
	rootCmd.PersistentFlags().StringVar(&flags.moduleAddress, "module-address", "", "Relief module address (overrides RELIEF_MODULE_ADDRESS)")
	rootCmd.PersistentFlags().StringVar(&flags.privateKey, "private-key", "", "Hex Ed25519 private key (overrides SUPRA_PRIVATE_KEY)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "text", "Output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "Log format: console|json")
	rootCmd.PersistentFlags().BoolVar(&flags.noWait, "no-wait", false, "Return after submission without waiting for finality")
	rootCmd.PersistentFlags().BoolVar(&flags.noSimulate, "no-simulate", false, "Skip simulation before submission")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 60*time.Second, "Maximum wait for finality (0 waits until interrupted)")

	rootCmd.AddCommand(
		newCreateManagementCmd(flags),
		newAddCenterCmd(flags),
		newDonateCmd(flags),
		newBalanceCmd(flags),
		newTwoByTwoCmd(flags),
	)
	return rootCmd
}

func (f *rootFlags) openSession() (*cliSession, error) {
	switch f.output {
	case "json", "text", "":
	default:
		return nil, fmt.Errorf("invalid --output: %s (use json|text)", f.output)
	}

	settings, err := shared.OperatorSettingsFromEnv()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(f.network) != "" {
		network, err := shared.NormalizeNetwork(f.network)
		if err != nil {
			return nil, err
		}
		settings.Network = network
	}
	if strings.TrimSpace(f.rpcURL) != "" {
		settings.RPCURL = strings.TrimSpace(f.rpcURL)
	}
	if strings.TrimSpace(f.moduleAddress) != "" {
		settings.ModuleAddress = strings.TrimSpace(f.moduleAddress)
	}
	if strings.TrimSpace(f.privateKey) != "" {
		settings.PrivateKey = strings.TrimSpace(f.privateKey)
	}

	logger := shared.NewLogger(f.logLevel, f.logFormat)

	ledger, err := supra.NewClient(supra.Config{
		Network: settings.Network,
		BaseURL: settings.RPCURL,
		Logger:  &logger,
	})
	if err != nil {
		return nil, err
	}

	options := supra.SubmitOptions{
		WaitForTransaction:  !f.noWait,
		SimulateTransaction: !f.noSimulate,
		FinalityTimeout:     f.timeout,
	}
	reliefClient, err := relief.NewClient(ledger, relief.ClientConfig{
		ModuleAddress: settings.ModuleAddress,
		SubmitOptions: &options,
		Logger:        &logger,
	})
	if err != nil {
		return nil, err
	}

	return &cliSession{
		settings: settings,
		logger:   logger,
		ledger:   ledger,
		relief:   reliefClient,
		options:  options,
	}, nil
}

func (s *cliSession) credential() (string, error) {
	if s.settings.PrivateKey == "" {
		return "", fmt.Errorf("a private key is required (--private-key or SUPRA_PRIVATE_KEY)")
	}
	return s.settings.PrivateKey, nil
}
