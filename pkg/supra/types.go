package supra

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "Success"
	TransactionStatusPending TransactionStatus = "Pending"
	TransactionStatusFail    TransactionStatus = "Fail"
	TransactionStatusInvalid TransactionStatus = "Invalid"
)

// Terminal reports whether the ledger will not change the status again.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case TransactionStatusSuccess, TransactionStatusFail, TransactionStatusInvalid:
		return true
	default:
		return false
	}
}

// EntryFunctionPayload addresses a Move entry function as
// "<address>::<module>::<function>". Arguments are encoded positionally.
type EntryFunctionPayload struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

type SubmitOptions struct {
	WaitForTransaction  bool
	SimulateTransaction bool
	// FinalityTimeout bounds WaitForTransaction. Zero leaves the wait bounded
	// only by the caller's context.
	FinalityTimeout time.Duration
}

type TransactionResult struct {
	Hash           string            `json:"hash"`
	Status         TransactionStatus `json:"status"`
	VMStatus       string            `json:"vm_status,omitempty"`
	GasUsed        uint64            `json:"gas_used,omitempty"`
	Sender         string            `json:"sender"`
	SequenceNumber uint64            `json:"sequence_number"`
}

type Balance uint64

type AccountInfo struct {
	SequenceNumber    Uint64String `json:"sequence_number"`
	AuthenticationKey string       `json:"authentication_key"`
}

type TransactionInfo struct {
	Hash   string             `json:"hash"`
	Status TransactionStatus  `json:"status"`
	Output *TransactionOutput `json:"output,omitempty"`
}

type TransactionOutput struct {
	Move *MoveOutput `json:"Move,omitempty"`
}

type MoveOutput struct {
	GasUsed  Uint64String `json:"gas_used"`
	VMStatus string       `json:"vm_status"`
}

func (t TransactionInfo) vmStatus() string {
	if t.Output == nil || t.Output.Move == nil {
		return ""
	}
	return t.Output.Move.VMStatus
}

func (t TransactionInfo) gasUsed() uint64 {
	if t.Output == nil || t.Output.Move == nil {
		return 0
	}
	return uint64(t.Output.Move.GasUsed)
}

// Uint64String decodes a JSON number or a decimal string.
type Uint64String uint64

func (u *Uint64String) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*u = 0
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		trimmed = []byte(text)
	}
	value, err := strconv.ParseUint(string(trimmed), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unsigned integer %s: %w", string(data), err)
	}
	*u = Uint64String(value)
	return nil
}

type coinStoreResponse struct {
	Result []struct {
		Coin struct {
			Value Uint64String `json:"value"`
		} `json:"coin"`
	} `json:"result"`
}

type chainIDResponse struct {
	ID uint8 `json:"id"`
}

type submitRequest struct {
	Move signedTransactionJSON `json:"Move"`
}

type signedTransactionJSON struct {
	RawTxn        rawTransactionJSON `json:"raw_txn"`
	Authenticator authenticatorJSON  `json:"authenticator"`
}

type authenticatorJSON struct {
	Ed25519 ed25519AuthenticatorJSON `json:"Ed25519"`
}

type ed25519AuthenticatorJSON struct {
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type rawTransactionJSON struct {
	Sender                  string      `json:"sender"`
	SequenceNumber          uint64      `json:"sequence_number"`
	Payload                 payloadJSON `json:"payload"`
	MaxGasAmount            uint64      `json:"max_gas_amount"`
	GasUnitPrice            uint64      `json:"gas_unit_price"`
	ExpirationTimestampSecs uint64      `json:"expiration_timestamp_secs"`
	ChainID                 uint8       `json:"chain_id"`
}

type payloadJSON struct {
	EntryFunction entryFunctionJSON `json:"EntryFunction"`
}

type entryFunctionJSON struct {
	Module   moduleJSON `json:"module"`
	Function string     `json:"function"`
	TyArgs   []string   `json:"ty_args"`
	Args     []byteList `json:"args"`
}

type moduleJSON struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// byteList marshals as an array of numbers rather than base64.
type byteList []byte

func (b byteList) MarshalJSON() ([]byte, error) {
	values := make([]int, len(b))
	for index, value := range b {
		values[index] = int(value)
	}
	return json.Marshal(values)
}
