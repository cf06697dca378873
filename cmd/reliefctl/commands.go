package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reliefchain/relief-sdk-go/pkg/relief"
	"github.com/reliefchain/relief-sdk-go/pkg/transfer"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var decimalPattern = regexp.MustCompile(`^[0-9]+$`)

func newCreateManagementCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create-management",
		Short: "Create the management resource under the signer's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.openSession()
			if err != nil {
				return err
			}
			credential, err := session.credential()
			if err != nil {
				return err
			}
			result, err := session.relief.CreateManagement(cmd.Context(), credential)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), flags.output, "Management system created", result)
		},
	}
}

func newAddCenterCmd(flags *rootFlags) *cobra.Command {
	var params relief.AddCenterParams
	cmd := &cobra.Command{
		Use:   "add-center",
		Short: "Register a relief center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.openSession()
			if err != nil {
				return err
			}
			credential, err := session.credential()
			if err != nil {
				return err
			}
			result, err := session.relief.AddCenter(cmd.Context(), credential, params)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), flags.output, "Relief center added", result)
		},
	}
	cmd.Flags().StringVar(&params.Name, "name", "", "Center name")
	cmd.Flags().StringVar(&params.Location, "location", "", "Center location")
	cmd.Flags().StringVar(&params.City, "city", "", "Center city")
	cmd.Flags().StringVar(&params.State, "state", "", "Center state")
	for _, name := range []string{"name", "location", "city", "state"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDonateCmd(flags *rootFlags) *cobra.Command {
	var centerID, amount string
	cmd := &cobra.Command{
		Use:   "donate",
		Short: "Donate to a relief center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseDonateParams(centerID, amount)
			if err != nil {
				return err
			}
			session, err := flags.openSession()
			if err != nil {
				return err
			}
			credential, err := session.credential()
			if err != nil {
				return err
			}
			result, err := session.relief.DonateToCenter(cmd.Context(), credential, params)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), flags.output, "Donation successful", result)
		},
	}
	cmd.Flags().StringVar(&centerID, "center-id", "", "Center identifier")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to donate")
	_ = cmd.MarkFlagRequired("center-id")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBalanceCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the coin balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := flags.openSession()
			if err != nil {
				return err
			}
			balance, err := session.relief.GetBalance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBalance(cmd.OutOrStdout(), flags.output, args[0], uint64(balance))
		},
	}
}

func newTwoByTwoCmd(flags *rootFlags) *cobra.Command {
	var amount, first, second, moduleAddress string
	cmd := &cobra.Command{
		Use:   "two-by-two",
		Short: "Split an amount between two recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedAmount, err := parseDecimalFlag("amount", amount)
			if err != nil {
				return err
			}
			session, err := flags.openSession()
			if err != nil {
				return err
			}
			credential, err := session.credential()
			if err != nil {
				return err
			}
			client, err := transfer.NewClient(session.ledger, moduleAddress, session.options, session.logger)
			if err != nil {
				return err
			}
			result, err := client.TwoByTwo(cmd.Context(), credential, transfer.TwoByTwoParams{
				Amount:          parsedAmount,
				FirstRecipient:  first,
				SecondRecipient: second,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), flags.output, "Transfer submitted", result)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to send to each recipient")
	cmd.Flags().StringVar(&first, "first", "", "First recipient address")
	cmd.Flags().StringVar(&second, "second", "", "Second recipient address")
	cmd.Flags().StringVar(&moduleAddress, "transfer-module", "", "Transfer module address")
	for _, name := range []string{"amount", "first", "second"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func parseDonateParams(centerID string, amount string) (relief.DonateParams, error) {
	parsedCenterID, err := parseDecimalFlag("center-id", centerID)
	if err != nil {
		return relief.DonateParams{}, err
	}
	parsedAmount, err := parseDecimalFlag("amount", amount)
	if err != nil {
		return relief.DonateParams{}, err
	}
	return relief.DonateParams{CenterID: parsedCenterID, Amount: parsedAmount}, nil
}

// parseDecimalFlag accepts base-10 digits only. cast alone would read "010"
// as octal and "0x10" as hex.
func parseDecimalFlag(name string, value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if !decimalPattern.MatchString(trimmed) || (len(trimmed) > 1 && trimmed[0] == '0') {
		return 0, fmt.Errorf("invalid --%s %q: must be a decimal number", name, value)
	}
	parsed, err := cast.ToUint64E(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return parsed, nil
}
