// Package keychain implements the SecretStore port using the
// zalando/go-keyring library: macOS Keychain, Windows Credential Manager,
// or the Linux Secret Service, whichever the platform provides.
package keychain

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SecretStore = Store{}

// Store persists secrets in the OS keychain. The zero value is ready to
// use; entries are scoped to the calling user's keychain session, so no
// connection state is held between operations.
type Store struct{}

// Set stores or replaces the value for (service, account).
func (Store) Set(ctx context.Context, service, account, value string) error {
	if err := keyring.Set(service, account, value); err != nil {
		return fmt.Errorf("keychain set %s/%s: %w", service, account, err)
	}
	return nil
}

// Get retrieves the value for (service, account), mapping the library's
// absence signal to driven.ErrSecretNotFound. Platform faults (locked
// keyring, missing D-Bus service, unsupported platform) surface wrapped.
func (Store) Get(ctx context.Context, service, account string) (string, error) {
	value, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("keychain entry %s/%s: %w", service, account, driven.ErrSecretNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("keychain get %s/%s: %w", service, account, err)
	}
	return value, nil
}

// Delete removes the entry for (service, account). A missing entry is
// success: the port contract is that Delete establishes absence.
func (Store) Delete(ctx context.Context, service, account string) error {
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keychain delete %s/%s: %w", service, account, err)
	}
	return nil
}
