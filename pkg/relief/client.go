package relief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reliefchain/relief-sdk-go/pkg/supra"
	"github.com/rs/zerolog"
)

type Client struct {
	ledger        Ledger
	moduleAddress string
	options       supra.SubmitOptions
	logger        zerolog.Logger
	metrics       *Metrics
}

// NewClient creates a new Client.
func NewClient(ledger Ledger, config ClientConfig) (*Client, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	moduleAddress := strings.TrimSpace(config.ModuleAddress)
	if moduleAddress == "" {
		moduleAddress = DefaultModuleAddress
	}
	if _, err := supra.ParseAddress(moduleAddress); err != nil {
		return nil, fmt.Errorf("invalid module address: %w", err)
	}

	options := DefaultSubmitOptions()
	if config.SubmitOptions != nil {
		options = *config.SubmitOptions
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Client{
		ledger:        ledger,
		moduleAddress: moduleAddress,
		options:       options,
		logger:        logger.With().Str("component", "relief").Logger(),
		metrics:       config.Metrics,
	}, nil
}

// ModuleAddress returns the address every payload is sent to.
func (c *Client) ModuleAddress() string {
	return c.moduleAddress
}

// CreateManagement initializes the management resource under the signer.
func (c *Client) CreateManagement(ctx context.Context, credential string) (supra.TransactionResult, error) {
	return c.Submit(ctx, credential, BuildCreateManagementPayload(c.moduleAddress))
}

// AddCenter registers a relief center.
func (c *Client) AddCenter(ctx context.Context, credential string, params AddCenterParams) (supra.TransactionResult, error) {
	return c.Submit(ctx, credential, BuildAddCenterPayload(c.moduleAddress, params))
}

// DonateToCenter donates amount to the center with the given id.
func (c *Client) DonateToCenter(ctx context.Context, credential string, params DonateParams) (supra.TransactionResult, error) {
	return c.Submit(ctx, credential, BuildDonatePayload(c.moduleAddress, params))
}

// Submit signs payload with the account derived from credential and sends
// it through the ledger. The credential is decoded before any network call.
func (c *Client) Submit(ctx context.Context, credential string, payload supra.EntryFunctionPayload) (supra.TransactionResult, error) {
	started := time.Now()
	operation := operationLabel(payload.Function)
	logger := c.logger.With().Str("operation", operation).Logger()

	result, err := c.submit(ctx, credential, payload)
	c.metrics.observe(operation, err, time.Since(started))
	if err != nil {
		logger.Error().Err(err).Msg("relief transaction failed")
		return result, err
	}

	logger.Info().
		Str("hash", result.Hash).
		Str("status", string(result.Status)).
		Str("sender", result.Sender).
		Msg("relief transaction submitted")
	return result, nil
}

func (c *Client) submit(ctx context.Context, credential string, payload supra.EntryFunctionPayload) (supra.TransactionResult, error) {
	account, err := supra.AccountFromHex(credential)
	if err != nil {
		return supra.TransactionResult{}, &InvalidCredentialError{Cause: err}
	}

	result, err := c.ledger.SendEntryFunction(ctx, account, payload, c.options)
	if err != nil {
		return result, &SubmissionError{Function: payload.Function, Cause: err}
	}
	return result, nil
}

// GetBalance returns the coin balance of address. The balance is only read
// once the account is known to exist.
func (c *Client) GetBalance(ctx context.Context, address string) (supra.Balance, error) {
	started := time.Now()
	logger := c.logger.With().Str("operation", string(OperationGetBalance)).Str("address", address).Logger()

	balance, err := c.getBalance(ctx, address)
	c.metrics.observe(string(OperationGetBalance), err, time.Since(started))
	if err != nil {
		logger.Error().Err(err).Msg("relief balance query failed")
		return 0, err
	}

	logger.Debug().Uint64("balance", uint64(balance)).Msg("relief balance retrieved")
	return balance, nil
}

func (c *Client) getBalance(ctx context.Context, address string) (supra.Balance, error) {
	exists, err := c.ledger.AccountExists(ctx, address)
	if err != nil {
		return 0, &QueryError{Address: address, Cause: err}
	}
	if !exists {
		return 0, &AccountNotFoundError{Address: address}
	}

	balance, err := c.ledger.GetAccountBalance(ctx, address)
	if err != nil {
		return 0, &QueryError{Address: address, Cause: err}
	}
	return balance, nil
}

func operationLabel(function string) string {
	if index := strings.LastIndex(function, "::"); index >= 0 {
		return function[index+2:]
	}
	return function
}
