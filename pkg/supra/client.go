package supra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/reliefchain/relief-sdk-go/pkg/shared"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxGasAmount     uint64 = 500000
	DefaultGasUnitPrice     uint64 = 100
	DefaultExpirationWindow        = 300 * time.Second
	DefaultPollInterval            = 500 * time.Millisecond

	supraCoinStore = "0x1::coin::CoinStore<0x1::supra_coin::SupraCoin>"
)

var errTransactionPending = errors.New("transaction pending")

type Config struct {
	Network          string
	BaseURL          string
	HTTPClient       *http.Client
	Headers          map[string]string
	Logger           *zerolog.Logger
	MaxGasAmount     uint64
	GasUnitPrice     uint64
	ExpirationWindow time.Duration
	PollInterval     time.Duration
}

type Client struct {
	baseURL          string
	httpClient       *http.Client
	headers          map[string]string
	logger           zerolog.Logger
	maxGasAmount     uint64
	gasUnitPrice     uint64
	expirationWindow time.Duration
	pollInterval     time.Duration
	now              func() time.Time
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		defaultURL, err := shared.DefaultRPCURL(config.Network)
		if err != nil {
			return nil, err
		}
		baseURL = defaultURL
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid RPC base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid RPC base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid RPC base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	client := &Client{
		baseURL:          baseURL,
		httpClient:       httpClient,
		headers:          headers,
		logger:           logger.With().Str("component", "supra_rpc").Logger(),
		maxGasAmount:     config.MaxGasAmount,
		gasUnitPrice:     config.GasUnitPrice,
		expirationWindow: config.ExpirationWindow,
		pollInterval:     config.PollInterval,
		now:              time.Now,
	}
	if client.maxGasAmount == 0 {
		client.maxGasAmount = DefaultMaxGasAmount
	}
	if client.gasUnitPrice == 0 {
		client.gasUnitPrice = DefaultGasUnitPrice
	}
	if client.expirationWindow <= 0 {
		client.expirationWindow = DefaultExpirationWindow
	}
	if client.pollInterval <= 0 {
		client.pollInterval = DefaultPollInterval
	}

	return client, nil
}

// BaseURL returns the resolved RPC endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAccountInfo returns the account's sequence number and authentication
// key. A missing account yields an error wrapping ErrAccountNotFound.
func (c *Client) GetAccountInfo(ctx context.Context, address string) (AccountInfo, error) {
	parsed, err := ParseAddress(address)
	if err != nil {
		return AccountInfo{}, err
	}

	var info *AccountInfo
	path := fmt.Sprintf("/rpc/v1/accounts/%s", parsed)
	if err := c.getJSON(ctx, path, &info); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.StatusCode == http.StatusNotFound {
			return AccountInfo{}, fmt.Errorf("%w: %s", ErrAccountNotFound, parsed)
		}
		return AccountInfo{}, err
	}
	if info == nil {
		return AccountInfo{}, fmt.Errorf("%w: %s", ErrAccountNotFound, parsed)
	}

	return *info, nil
}

// AccountExists reports whether the ledger knows the address.
func (c *Client) AccountExists(ctx context.Context, address string) (bool, error) {
	_, err := c.GetAccountInfo(ctx, address)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetAccountBalance returns the native coin balance. An account without a
// coin store has a zero balance.
func (c *Client) GetAccountBalance(ctx context.Context, address string) (Balance, error) {
	parsed, err := ParseAddress(address)
	if err != nil {
		return 0, err
	}

	var response coinStoreResponse
	path := fmt.Sprintf("/rpc/v1/accounts/%s/resources/%s", parsed, url.PathEscape(supraCoinStore))
	if err := c.getJSON(ctx, path, &response); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.StatusCode == http.StatusNotFound {
			return 0, nil
		}
		return 0, err
	}
	if len(response.Result) == 0 {
		return 0, nil
	}

	return Balance(response.Result[0].Coin.Value), nil
}

// GetChainID returns the chain id that transactions must be bound to.
func (c *Client) GetChainID(ctx context.Context) (uint8, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/rpc/v1/transactions/chain_id", &raw); err != nil {
		return 0, err
	}

	var chainID uint8
	var direct uint8
	if err := json.Unmarshal(raw, &direct); err == nil {
		chainID = direct
	} else {
		var wrapped chainIDResponse
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return 0, fmt.Errorf("failed to decode chain id: %w", err)
		}
		chainID = wrapped.ID
	}
	// null, an empty body, and {} all decode to zero, which no network uses.
	if chainID == 0 {
		return 0, fmt.Errorf("supra rpc returned no chain id: %s", strings.TrimSpace(string(raw)))
	}
	return chainID, nil
}

// GetTransaction returns nil when the ledger has no record of the hash yet.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*TransactionInfo, error) {
	normalized := strings.TrimSpace(hash)
	if normalized == "" {
		return nil, fmt.Errorf("transaction hash is required")
	}

	var info *TransactionInfo
	path := fmt.Sprintf("/rpc/v1/transactions/%s", url.PathEscape(normalized))
	if err := c.getJSON(ctx, path, &info); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if info != nil && info.Hash == "" {
		info.Hash = normalized
	}

	return info, nil
}

// BuildRawTransaction binds the payload to the sender's current sequence
// number and the network's chain id.
func (c *Client) BuildRawTransaction(ctx context.Context, sender AccountAddress, payload EntryFunctionPayload) (RawTransaction, error) {
	entryFunction, err := BuildEntryFunction(payload)
	if err != nil {
		return RawTransaction{}, err
	}

	info, err := c.GetAccountInfo(ctx, sender.String())
	if err != nil {
		return RawTransaction{}, err
	}
	chainID, err := c.GetChainID(ctx)
	if err != nil {
		return RawTransaction{}, err
	}

	return RawTransaction{
		Sender:                  sender,
		SequenceNumber:          uint64(info.SequenceNumber),
		Payload:                 entryFunction,
		MaxGasAmount:            c.maxGasAmount,
		GasUnitPrice:            c.gasUnitPrice,
		ExpirationTimestampSecs: uint64(c.now().Add(c.expirationWindow).Unix()),
		ChainID:                 chainID,
	}, nil
}

// SimulateTransaction dry-runs the transaction with an empty signature.
func (c *Client) SimulateTransaction(ctx context.Context, account *Account, transaction RawTransaction) (TransactionInfo, error) {
	request := signedRequest(transaction, account.PublicKey(), make([]byte, 64))

	var info TransactionInfo
	if err := c.postJSON(ctx, "/rpc/v1/transactions/simulate", request, &info); err != nil {
		return TransactionInfo{}, err
	}

	c.logger.Debug().
		Str("sender", transaction.Sender.String()).
		Str("status", string(info.Status)).
		Str("vm_status", info.vmStatus()).
		Msg("simulated transaction")

	if info.Status != TransactionStatusSuccess {
		return info, &TransactionFailedError{
			Status:    info.Status,
			VMStatus:  info.vmStatus(),
			Simulated: true,
		}
	}
	return info, nil
}

// SubmitTransaction signs and submits the transaction, returning its hash.
func (c *Client) SubmitTransaction(ctx context.Context, account *Account, transaction RawTransaction) (string, error) {
	signature := account.Sign(transaction.SigningMessage())
	request := signedRequest(transaction, account.PublicKey(), signature)

	var raw json.RawMessage
	if err := c.postJSON(ctx, "/rpc/v1/transactions/submit", request, &raw); err != nil {
		return "", err
	}

	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil {
		var wrapped struct {
			Hash string `json:"hash"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return "", fmt.Errorf("failed to decode submit response: %w", err)
		}
		hash = wrapped.Hash
	}
	if strings.TrimSpace(hash) == "" {
		return "", fmt.Errorf("submit response did not include a transaction hash")
	}

	c.logger.Debug().
		Str("hash", hash).
		Str("sender", transaction.Sender.String()).
		Uint64("sequence_number", transaction.SequenceNumber).
		Msg("submitted transaction")

	return hash, nil
}

// WaitForTransaction polls until the transaction reaches a terminal status.
// The wait is bounded by ctx and, when positive, by timeout. A terminal
// status other than Success is returned as *TransactionFailedError.
func (c *Client) WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (TransactionInfo, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.pollInterval
	policy.MaxInterval = 8 * c.pollInterval
	policy.MaxElapsedTime = 0

	var info TransactionInfo
	operation := func() error {
		current, err := c.GetTransaction(ctx, hash)
		if err != nil {
			return backoff.Permanent(err)
		}
		if current == nil || !current.Status.Terminal() {
			return errTransactionPending
		}
		info = *current
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return TransactionInfo{}, fmt.Errorf("failed waiting for transaction %s: %w", hash, err)
	}

	if info.Status != TransactionStatusSuccess {
		return info, &TransactionFailedError{
			Hash:     info.Hash,
			Status:   info.Status,
			VMStatus: info.vmStatus(),
		}
	}
	return info, nil
}

// SendEntryFunction builds, optionally simulates, submits, and optionally
// waits for an entry function transaction. Nothing is retried.
func (c *Client) SendEntryFunction(
	ctx context.Context,
	account *Account,
	payload EntryFunctionPayload,
	options SubmitOptions,
) (TransactionResult, error) {
	if account == nil {
		return TransactionResult{}, fmt.Errorf("account is required")
	}

	transaction, err := c.BuildRawTransaction(ctx, account.Address(), payload)
	if err != nil {
		return TransactionResult{}, err
	}

	if options.SimulateTransaction {
		if _, err := c.SimulateTransaction(ctx, account, transaction); err != nil {
			return TransactionResult{}, err
		}
	}

	hash, err := c.SubmitTransaction(ctx, account, transaction)
	if err != nil {
		return TransactionResult{}, err
	}

	result := TransactionResult{
		Hash:           hash,
		Status:         TransactionStatusPending,
		Sender:         transaction.Sender.String(),
		SequenceNumber: transaction.SequenceNumber,
	}
	if !options.WaitForTransaction {
		return result, nil
	}

	info, err := c.WaitForTransaction(ctx, hash, options.FinalityTimeout)
	if err != nil {
		return result, err
	}
	result.Status = info.Status
	result.VMStatus = info.vmStatus()
	result.GasUsed = info.gasUsed()
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, target)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, target any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, encoded, target)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body []byte, target any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("supra rpc request failed: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read supra rpc response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &RPCError{
			Method:     method,
			Path:       path,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(responseBody)),
		}
	}

	if len(bytes.TrimSpace(responseBody)) == 0 {
		responseBody = []byte("null")
	}
	if err := json.Unmarshal(responseBody, target); err != nil {
		return fmt.Errorf("failed to decode supra rpc response: %w", err)
	}

	return nil
}
