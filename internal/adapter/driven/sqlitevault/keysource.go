package sqlitevault

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

// Hooks for tests.
var keySourceReadFile = os.ReadFile

const (
	passphraseEnv = "KEYVAULT_PASSPHRASE"
	machineIDPath = "/etc/machine-id"

	kdfIterations = 600_000
	kdfKeyLen     = 32
)

// kdfSalt is fixed so the same passphrase always opens the same vault file.
var kdfSalt = []byte("keyvault.sqlitevault.v1")

// DeriveKey stretches a passphrase into a 32-byte AES-256 key using
// PBKDF2-SHA256.
func DeriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), kdfSalt, kdfIterations, kdfKeyLen, sha256.New)
}

// DefaultKey returns the vault key from KEYVAULT_PASSPHRASE or, when the
// variable is unset, from the host identity at /etc/machine-id. Callers
// must not modify the returned slice.
func DefaultKey() ([]byte, error) {
	if s := os.Getenv(passphraseEnv); s != "" {
		return DeriveKey(s), nil
	}

	b, err := keySourceReadFile(machineIDPath)
	if err != nil {
		return nil, fmt.Errorf("vault key: set %s or ensure %s exists: %w", passphraseEnv, machineIDPath, err)
	}
	// Use the first line; machine-id is normally a single line.
	for i, c := range b {
		if c == '\n' || c == '\r' {
			b = b[:i]
			break
		}
	}
	if len(b) == 0 {
		return nil, errors.New("vault key: machine-id is empty")
	}
	return DeriveKey(string(b)), nil
}
