package supra

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeLedger struct {
	mu              sync.Mutex
	calls           []string
	accountStatus   int
	sequenceNumber  string
	simulateStatus  TransactionStatus
	pendingPolls    int
	finalStatus     TransactionStatus
	submitted       []submitRequest
	transactionHash string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accountStatus:   http.StatusOK,
		sequenceNumber:  "7",
		simulateStatus:  TransactionStatusSuccess,
		finalStatus:     TransactionStatusSuccess,
		transactionHash: "0xfeed",
	}
}

func (f *fakeLedger) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeLedger) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeLedger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == "/rpc/v1/transactions/chain_id":
		f.record("chain_id")
		_, _ = w.Write([]byte(`{"id":6}`))
	case r.Method == http.MethodGet && strings.Contains(path, "/resources/"):
		f.record("balance")
		_, _ = w.Write([]byte(`{"result":[{"coin":{"value":"1500"}}]}`))
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/rpc/v1/accounts/"):
		f.record("account")
		if f.accountStatus != http.StatusOK {
			w.WriteHeader(f.accountStatus)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sequence_number":"` + f.sequenceNumber + `","authentication_key":"0x00"}`))
	case r.Method == http.MethodPost && path == "/rpc/v1/transactions/simulate":
		f.record("simulate")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": f.simulateStatus,
			"output": map[string]any{"Move": map[string]any{"gas_used": 12, "vm_status": "Move abort 0x1"}},
		})
	case r.Method == http.MethodPost && path == "/rpc/v1/transactions/submit":
		f.record("submit")
		var request submitRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.submitted = append(f.submitted, request)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`"` + f.transactionHash + `"`))
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/rpc/v1/transactions/"):
		f.record("transaction")
		f.mu.Lock()
		pending := f.pendingPolls > 0
		if pending {
			f.pendingPolls--
		}
		f.mu.Unlock()
		if pending {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hash":   f.transactionHash,
			"status": f.finalStatus,
			"output": map[string]any{"Move": map[string]any{"gas_used": "42", "vm_status": "Executed successfully"}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:      server.URL,
		HTTPClient:   server.Client(),
		PollInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	return client
}

func testAccount(t *testing.T) *Account {
	t.Helper()
	account, err := AccountFromHex(testPrivateKey)
	if err != nil {
		t.Fatalf("failed to parse test account: %v", err)
	}
	return account
}

func donatePayload() EntryFunctionPayload {
	return EntryFunctionPayload{
		Function:      "0x1::relief_center_management::donate_to_center",
		TypeArguments: []string{},
		Arguments:     []any{uint64(3), uint64(500)},
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{Network: "testnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "https://rpc-testnet.supra.com" {
		t.Fatalf("unexpected baseURL: %s", client.BaseURL())
	}
	if client.maxGasAmount != DefaultMaxGasAmount || client.gasUnitPrice != DefaultGasUnitPrice {
		t.Fatalf("unexpected gas defaults: %d %d", client.maxGasAmount, client.gasUnitPrice)
	}

	mainnet, err := NewClient(Config{Network: "mainnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mainnet.BaseURL() != "https://rpc-mainnet.supra.com" {
		t.Fatalf("unexpected baseURL: %s", mainnet.BaseURL())
	}
}

func TestNewClientCustomBaseURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://custom.example.com/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "https://custom.example.com" {
		t.Fatalf("unexpected baseURL: %s", client.BaseURL())
	}
}

func TestNewClientInvalidConfig(t *testing.T) {
	invalid := []Config{
		{Network: "badnet"},
		{BaseURL: "ftp://example.com"},
		{BaseURL: "https://"},
	}
	for _, config := range invalid {
		if _, err := NewClient(config); err == nil {
			t.Fatalf("expected error for %+v", config)
		}
	}
}

func TestGetAccountInfo(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)

	info, err := client.GetAccountInfo(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SequenceNumber != 7 {
		t.Fatalf("expected sequence number 7, got %d", info.SequenceNumber)
	}
}

func TestAccountExistsMissing(t *testing.T) {
	ledger := newFakeLedger()
	ledger.accountStatus = http.StatusNotFound
	client := newTestClient(t, ledger)

	exists, err := client.AccountExists(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected account to be missing")
	}

	_, err = client.GetAccountInfo(context.Background(), testAddress)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountExistsNullBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))

	exists, err := client.AccountExists(context.Background(), "0x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected null account body to mean missing")
	}
}

func TestAccountExistsServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))

	_, err := client.AccountExists(context.Background(), "0x1")
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected RPCError, got %v", err)
	}
	if rpcErr.StatusCode != http.StatusInternalServerError || rpcErr.Body != "boom" {
		t.Fatalf("unexpected RPCError: %+v", rpcErr)
	}
}

func TestGetAccountBalance(t *testing.T) {
	var requestedPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"result":[{"coin":{"value":"1500"}}]}`))
	}))

	balance, err := client.GetAccountBalance(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 1500 {
		t.Fatalf("expected balance 1500, got %d", balance)
	}
	expectedPath := "/rpc/v1/accounts/" + testAddress + "/resources/0x1::coin::CoinStore<0x1::supra_coin::SupraCoin>"
	if requestedPath != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, requestedPath)
	}
}

func TestGetAccountBalanceEmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":[]}`))
	}))

	balance, err := client.GetAccountBalance(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestGetChainIDForms(t *testing.T) {
	for body, expected := range map[string]uint8{`{"id":6}`: 6, `8`: 8} {
		responseBody := body
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(responseBody))
		}))
		chainID, err := client.GetChainID(context.Background())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", body, err)
		}
		if chainID != expected {
			t.Fatalf("expected chain id %d for %s, got %d", expected, body, chainID)
		}
	}
}

func TestGetChainIDRejectsMissingID(t *testing.T) {
	for _, body := range []string{"", "null", "{}", "0", `{"id":0}`} {
		responseBody := body
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(responseBody))
		}))
		if chainID, err := client.GetChainID(context.Background()); err == nil {
			t.Fatalf("expected error for body %q, got chain id %d", body, chainID)
		}
	}
}

func TestSendEntryFunctionFullFlow(t *testing.T) {
	ledger := newFakeLedger()
	ledger.pendingPolls = 2
	client := newTestClient(t, ledger)
	account := testAccount(t)

	result, err := client.SendEntryFunction(context.Background(), account, donatePayload(), SubmitOptions{
		WaitForTransaction:  true,
		SimulateTransaction: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Hash != "0xfeed" || result.Status != TransactionStatusSuccess {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.GasUsed != 42 || result.SequenceNumber != 7 || result.Sender != testAddress {
		t.Fatalf("unexpected result details: %+v", result)
	}

	calls := strings.Join(ledger.recorded(), ",")
	expected := "account,chain_id,simulate,submit,transaction,transaction,transaction"
	if calls != expected {
		t.Fatalf("expected calls %s, got %s", expected, calls)
	}

	if len(ledger.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(ledger.submitted))
	}
	authenticator := ledger.submitted[0].Move.Authenticator.Ed25519
	signature, err := hex.DecodeString(strings.TrimPrefix(authenticator.Signature, "0x"))
	if err != nil {
		t.Fatalf("invalid signature hex: %v", err)
	}
	if authenticator.PublicKey != "0x"+testPublicKey {
		t.Fatalf("unexpected public key %s", authenticator.PublicKey)
	}

	transaction := testRawTransaction(t)
	if !ed25519.Verify(ed25519.PublicKey(account.PublicKey()), transaction.SigningMessage(), signature) {
		t.Fatal("expected submitted signature to verify against the raw transaction")
	}
}

func TestSendEntryFunctionWithoutWaitOrSimulation(t *testing.T) {
	ledger := newFakeLedger()
	client := newTestClient(t, ledger)

	result, err := client.SendEntryFunction(context.Background(), testAccount(t), donatePayload(), SubmitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != TransactionStatusPending {
		t.Fatalf("expected pending status, got %s", result.Status)
	}
	if calls := strings.Join(ledger.recorded(), ","); calls != "account,chain_id,submit" {
		t.Fatalf("unexpected calls %s", calls)
	}
}

func TestSendEntryFunctionSimulationFailureSkipsSubmit(t *testing.T) {
	ledger := newFakeLedger()
	ledger.simulateStatus = TransactionStatusFail
	client := newTestClient(t, ledger)

	_, err := client.SendEntryFunction(context.Background(), testAccount(t), donatePayload(), SubmitOptions{
		SimulateTransaction: true,
		WaitForTransaction:  true,
	})
	var failed *TransactionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected TransactionFailedError, got %v", err)
	}
	if !failed.Simulated || failed.VMStatus != "Move abort 0x1" {
		t.Fatalf("unexpected failure details: %+v", failed)
	}
	for _, call := range ledger.recorded() {
		if call == "submit" {
			t.Fatal("expected no submission after failed simulation")
		}
	}
}

func TestSendEntryFunctionMissingSender(t *testing.T) {
	ledger := newFakeLedger()
	ledger.accountStatus = http.StatusNotFound
	client := newTestClient(t, ledger)

	_, err := client.SendEntryFunction(context.Background(), testAccount(t), donatePayload(), SubmitOptions{})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSendEntryFunctionRequiresAccount(t *testing.T) {
	client := newTestClient(t, newFakeLedger())
	if _, err := client.SendEntryFunction(context.Background(), nil, donatePayload(), SubmitOptions{}); err == nil {
		t.Fatal("expected error for nil account")
	}
}

func TestWaitForTransactionFailedStatus(t *testing.T) {
	ledger := newFakeLedger()
	ledger.finalStatus = TransactionStatusFail
	client := newTestClient(t, ledger)

	_, err := client.WaitForTransaction(context.Background(), "0xfeed", 0)
	var failed *TransactionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected TransactionFailedError, got %v", err)
	}
	if failed.Hash != "0xfeed" || failed.Status != TransactionStatusFail || failed.Simulated {
		t.Fatalf("unexpected failure details: %+v", failed)
	}
}

func TestWaitForTransactionTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hash":"0xfeed","status":"Pending"}`))
	}))

	_, err := client.WaitForTransaction(context.Background(), "0xfeed", 20*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWaitForTransactionStopsOnRPCError(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.WaitForTransaction(context.Background(), "0xfeed", time.Second)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected RPCError, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected a single request, got %d", requests)
	}
}

func TestCustomHeaders(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("X-Custom")
		_, _ = w.Write([]byte(`{"id":6}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Headers: map[string]string{"X-Custom": "test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.GetChainID(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "test" {
		t.Fatalf("expected header X-Custom=test, got %q", header)
	}
}
