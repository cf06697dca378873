package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/reliefchain/relief-sdk-go/pkg/relief"
	"github.com/reliefchain/relief-sdk-go/pkg/supra"
	"github.com/rs/zerolog"
)

const DefaultModuleAddress = "f7ca15dcdd2d272282acdf33b1103d4ed7661ea5035e751686d30bcdc953e399"

type Sender interface {
	SendEntryFunction(
		ctx context.Context,
		account *supra.Account,
		payload supra.EntryFunctionPayload,
		options supra.SubmitOptions,
	) (supra.TransactionResult, error)
}

type TwoByTwoParams struct {
	Amount          uint64
	FirstRecipient  string
	SecondRecipient string
}

// BuildTwoByTwoPayload orders arguments as amount, first, second.
func BuildTwoByTwoPayload(moduleAddress string, amount uint64, first supra.AccountAddress, second supra.AccountAddress) supra.EntryFunctionPayload {
	return supra.EntryFunctionPayload{
		Function:      fmt.Sprintf("%s::transfer::two_by_two", moduleAddress),
		TypeArguments: []string{},
		Arguments:     []any{amount, first, second},
	}
}

type Client struct {
	sender        Sender
	moduleAddress string
	options       supra.SubmitOptions
	logger        zerolog.Logger
}

// NewClient creates a new Client. An empty moduleAddress selects
// DefaultModuleAddress.
func NewClient(sender Sender, moduleAddress string, options supra.SubmitOptions, logger zerolog.Logger) (*Client, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	address := strings.TrimSpace(moduleAddress)
	if address == "" {
		address = DefaultModuleAddress
	}
	if _, err := supra.ParseAddress(address); err != nil {
		return nil, fmt.Errorf("invalid module address: %w", err)
	}
	return &Client{
		sender:        sender,
		moduleAddress: address,
		options:       options,
		logger:        logger.With().Str("component", "transfer").Logger(),
	}, nil
}

// TwoByTwo sends params.Amount split across the two recipients. Credential
// and submission failures use the relief error types.
func (c *Client) TwoByTwo(ctx context.Context, credential string, params TwoByTwoParams) (supra.TransactionResult, error) {
	account, err := supra.AccountFromHex(credential)
	if err != nil {
		return supra.TransactionResult{}, &relief.InvalidCredentialError{Cause: err}
	}
	first, err := supra.ParseAddress(params.FirstRecipient)
	if err != nil {
		return supra.TransactionResult{}, fmt.Errorf("invalid first recipient: %w", err)
	}
	second, err := supra.ParseAddress(params.SecondRecipient)
	if err != nil {
		return supra.TransactionResult{}, fmt.Errorf("invalid second recipient: %w", err)
	}

	payload := BuildTwoByTwoPayload(c.moduleAddress, params.Amount, first, second)

	result, err := c.sender.SendEntryFunction(ctx, account, payload, c.options)
	if err != nil {
		c.logger.Error().Err(err).Msg("two_by_two transfer failed")
		return result, &relief.SubmissionError{Function: payload.Function, Cause: err}
	}
	c.logger.Info().Str("hash", result.Hash).Msg("two_by_two transfer submitted")
	return result, nil
}
