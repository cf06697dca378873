package supra

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const rawTransactionSalt = "SUPRA::RawTransaction"

// entryFunctionVariant is the TransactionPayload enum index of EntryFunction.
const entryFunctionVariant uint32 = 2

type ModuleID struct {
	Address AccountAddress
	Name    string
}

type EntryFunction struct {
	Module   ModuleID
	Function string
	Args     [][]byte
}

type RawTransaction struct {
	Sender                  AccountAddress
	SequenceNumber          uint64
	Payload                 EntryFunction
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

// ParseFunctionID splits "<address>::<module>::<function>".
func ParseFunctionID(functionID string) (ModuleID, string, error) {
	parts := strings.Split(strings.TrimSpace(functionID), "::")
	if len(parts) != 3 {
		return ModuleID{}, "", fmt.Errorf("function %q must have the form <address>::<module>::<function>", functionID)
	}
	address, err := ParseAddress(parts[0])
	if err != nil {
		return ModuleID{}, "", fmt.Errorf("invalid module address in %q: %w", functionID, err)
	}
	if parts[1] == "" || parts[2] == "" {
		return ModuleID{}, "", fmt.Errorf("function %q has an empty module or function name", functionID)
	}
	return ModuleID{Address: address, Name: parts[1]}, parts[2], nil
}

// BuildEntryFunction resolves the payload's target and BCS-encodes its
// arguments in order.
func BuildEntryFunction(payload EntryFunctionPayload) (EntryFunction, error) {
	if len(payload.TypeArguments) > 0 {
		return EntryFunction{}, fmt.Errorf("type arguments are not supported, got %d", len(payload.TypeArguments))
	}
	module, function, err := ParseFunctionID(payload.Function)
	if err != nil {
		return EntryFunction{}, err
	}

	args := make([][]byte, 0, len(payload.Arguments))
	for index, argument := range payload.Arguments {
		encoded, err := EncodeArgument(argument)
		if err != nil {
			return EntryFunction{}, fmt.Errorf("argument %d: %w", index, err)
		}
		args = append(args, encoded)
	}

	return EntryFunction{
		Module:   module,
		Function: function,
		Args:     args,
	}, nil
}

// BCS returns the canonical encoding that is signed.
func (t RawTransaction) BCS() []byte {
	serializer := &Serializer{}
	serializer.FixedBytes(t.Sender[:])
	serializer.U64(t.SequenceNumber)

	serializer.Uleb128(entryFunctionVariant)
	serializer.FixedBytes(t.Payload.Module.Address[:])
	serializer.Str(t.Payload.Module.Name)
	serializer.Str(t.Payload.Function)
	serializer.Uleb128(0)
	serializer.Uleb128(uint32(len(t.Payload.Args)))
	for _, arg := range t.Payload.Args {
		serializer.Bytes(arg)
	}

	serializer.U64(t.MaxGasAmount)
	serializer.U64(t.GasUnitPrice)
	serializer.U64(t.ExpirationTimestampSecs)
	serializer.U8(t.ChainID)
	return serializer.ToBytes()
}

// SigningMessage is sha3-256(salt) || BCS(raw transaction).
func (t RawTransaction) SigningMessage() []byte {
	prefix := sha3.Sum256([]byte(rawTransactionSalt))
	message := make([]byte, 0, len(prefix)+256)
	message = append(message, prefix[:]...)
	return append(message, t.BCS()...)
}

func (t RawTransaction) toJSON() rawTransactionJSON {
	args := make([]byteList, len(t.Payload.Args))
	for index, arg := range t.Payload.Args {
		args[index] = byteList(arg)
	}
	return rawTransactionJSON{
		Sender:         t.Sender.String(),
		SequenceNumber: t.SequenceNumber,
		Payload: payloadJSON{
			EntryFunction: entryFunctionJSON{
				Module: moduleJSON{
					Address: t.Payload.Module.Address.String(),
					Name:    t.Payload.Module.Name,
				},
				Function: t.Payload.Function,
				TyArgs:   []string{},
				Args:     args,
			},
		},
		MaxGasAmount:            t.MaxGasAmount,
		GasUnitPrice:            t.GasUnitPrice,
		ExpirationTimestampSecs: t.ExpirationTimestampSecs,
		ChainID:                 t.ChainID,
	}
}

func signedRequest(t RawTransaction, publicKey []byte, signature []byte) submitRequest {
	return submitRequest{
		Move: signedTransactionJSON{
			RawTxn: t.toJSON(),
			Authenticator: authenticatorJSON{
				Ed25519: ed25519AuthenticatorJSON{
					PublicKey: "0x" + hex.EncodeToString(publicKey),
					Signature: "0x" + hex.EncodeToString(signature),
				},
			},
		},
	}
}
