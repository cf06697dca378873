package supra

import (
	"encoding/hex"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/reliefchain/relief-sdk-go/pkg/shared"
	"golang.org/x/crypto/sha3"
)

// ed25519Scheme is the authentication key scheme byte for single Ed25519 keys.
const ed25519Scheme byte = 0x00

type AccountAddress [32]byte

// ParseAddress parses a hex address. Short forms such as "0x1" are
// left-padded with zeros.
func ParseAddress(raw string) (AccountAddress, error) {
	var address AccountAddress
	candidate := strings.TrimSpace(raw)
	candidate = strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")
	if candidate == "" {
		return address, fmt.Errorf("address cannot be empty")
	}
	if len(candidate) > 64 {
		return address, fmt.Errorf("address %q is longer than 32 bytes", raw)
	}
	if len(candidate)%2 == 1 {
		candidate = "0" + candidate
	}
	decoded, err := hex.DecodeString(candidate)
	if err != nil {
		return address, fmt.Errorf("address %q is not valid hex: %w", raw, err)
	}
	copy(address[len(address)-len(decoded):], decoded)
	return address, nil
}

func (a AccountAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Account is a signing identity derived from an Ed25519 private key.
type Account struct {
	privateKey hedera.PrivateKey
	publicKey  []byte
	address    AccountAddress
}

// NewAccount derives the account address from the key's public half.
func NewAccount(privateKey hedera.PrivateKey) *Account {
	publicKey := privateKey.PublicKey().BytesRaw()
	return &Account{
		privateKey: privateKey,
		publicKey:  publicKey,
		address:    DeriveAddress(publicKey),
	}
}

// AccountFromHex parses a hex private key and derives its account.
func AccountFromHex(raw string) (*Account, error) {
	privateKey, err := shared.ParsePrivateKey(raw)
	if err != nil {
		return nil, err
	}
	return NewAccount(privateKey), nil
}

// DeriveAddress returns sha3-256(publicKey || scheme).
func DeriveAddress(publicKey []byte) AccountAddress {
	material := make([]byte, 0, len(publicKey)+1)
	material = append(material, publicKey...)
	material = append(material, ed25519Scheme)
	return AccountAddress(sha3.Sum256(material))
}

func (a *Account) Address() AccountAddress {
	return a.address
}

func (a *Account) PublicKey() []byte {
	return append([]byte(nil), a.publicKey...)
}

func (a *Account) Sign(message []byte) []byte {
	return a.privateKey.Sign(message)
}
