package shared

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/joho/godotenv"
)

type OperatorConfig struct {
	PrivateKey    string
	Network       string
	RPCURL        string
	ModuleAddress string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv resolves operator settings from the environment and
// requires a private key.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	config, err := OperatorSettingsFromEnv()
	if err != nil {
		return OperatorConfig{}, err
	}
	if config.PrivateKey == "" {
		return OperatorConfig{}, fmt.Errorf("SUPRA_PRIVATE_KEY is required")
	}
	return config, nil
}

// OperatorSettingsFromEnv resolves operator settings from the environment.
// Every field may be empty except Network, which defaults to testnet.
func OperatorSettingsFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("SUPRA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return OperatorConfig{}, err
	}

	privateKey := firstNonEmptyEnv("SUPRA_PRIVATE_KEY", "PRIVATE_KEY")
	rpcURL := firstNonEmptyEnv("SUPRA_RPC_URL", "RPC_URL")
	moduleAddress := firstNonEmptyEnv("RELIEF_MODULE_ADDRESS", "MODULE_ADDRESS")

	prefix := strings.ToUpper(normalized) + "_"
	if scopedKey := firstNonEmptyEnv(prefix+"SUPRA_PRIVATE_KEY", prefix+"PRIVATE_KEY"); scopedKey != "" {
		privateKey = scopedKey
	}
	if scopedURL := firstNonEmptyEnv(prefix + "SUPRA_RPC_URL"); scopedURL != "" {
		rpcURL = scopedURL
	}
	if scopedModule := firstNonEmptyEnv(prefix + "RELIEF_MODULE_ADDRESS"); scopedModule != "" {
		moduleAddress = scopedModule
	}

	return OperatorConfig{
		PrivateKey:    privateKey,
		Network:       normalized,
		RPCURL:        rpcURL,
		ModuleAddress: moduleAddress,
	}, nil
}

// LoadDotEnv loads the nearest .env file once per process. Variables that
// are already set are left untouched.
func LoadDotEnv() {
	loadDotEnvIfPresent()
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func loadDotEnvFile(path string) bool {
	return godotenv.Load(path) == nil
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParsePrivateKey decodes a hex Ed25519 private key. Both the 32-byte seed
// and the 64-byte seed||public key forms are accepted, with or without a 0x
// prefix.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	candidate = strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	decoded, err := hex.DecodeString(candidate)
	if err != nil {
		return hedera.PrivateKey{}, fmt.Errorf("private key is not valid hex: %w", err)
	}
	if len(decoded) != 32 && len(decoded) != 64 {
		return hedera.PrivateKey{}, fmt.Errorf("private key must be 32 or 64 bytes, got %d", len(decoded))
	}

	key, err := hedera.PrivateKeyFromBytesEd25519(decoded[:32])
	if err != nil {
		return hedera.PrivateKey{}, fmt.Errorf("failed to parse private key as ED25519: %w", err)
	}
	if len(decoded) == 64 && !bytes.Equal(key.PublicKey().BytesRaw(), decoded[32:]) {
		return hedera.PrivateKey{}, fmt.Errorf("private key public half does not match its seed")
	}
	return key, nil
}
