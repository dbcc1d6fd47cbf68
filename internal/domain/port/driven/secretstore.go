// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
)

// ErrSecretNotFound indicates no source held a value for the requested
// identity. Backend adapters map their own absence signal to this sentinel;
// any other error from a store operation is a backend fault and is
// surfaced wrapped, never converted to not-found.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore defines the driven port for durable secret persistence.
// Implementations are the OS keychain and the encrypted SQLite vault.
type SecretStore interface {
	// Set stores or replaces the value for (service, account).
	Set(ctx context.Context, service, account, value string) error

	// Get retrieves the value for (service, account).
	// Returns ErrSecretNotFound (possibly wrapped) if no entry exists.
	Get(ctx context.Context, service, account string) (string, error)

	// Delete removes the entry for (service, account). Deleting an
	// absent entry is not an error: Delete establishes absence.
	Delete(ctx context.Context, service, account string) error
}

// SecretLister is an optional extension of SecretStore for backends that
// can enumerate their entries. OS keychains cannot; the SQLite vault can.
// Values are never included in listings.
type SecretLister interface {
	List(ctx context.Context, service string) ([]model.Entry, error)
}
