package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// ScalarManager binds one string secret to a (service, account) identity
// and resolves it through the shared source chain. Managers are stateless
// handles: nothing is cached between calls, and the backend connection
// belongs to the store adapter.
type ScalarManager struct {
	id       model.Identity
	store    driven.SecretStore
	prompter driven.Prompter // nil when interactive entry is not wired.
	resolver *Resolver
}

// NewScalarManager creates a manager for the secret addressed by
// (service, account). Construction performs no I/O and cannot fail.
// env may be nil to leave the environment out of resolution; prompter may
// be nil, in which case ReadOrRequest cannot fall back to interactive
// entry.
func NewScalarManager(
	service, account string,
	store driven.SecretStore,
	env driven.EnvSource,
	prompter driven.Prompter,
) *ScalarManager {
	return &ScalarManager{
		id:       model.Identity{Service: service, Account: account},
		store:    store,
		prompter: prompter,
		resolver: NewResolver(store, env),
	}
}

// Identity returns the (service, account) pair this manager addresses.
func (m *ScalarManager) Identity() model.Identity {
	return m.id
}

// Store writes value to the backend slot, creating or replacing it.
func (m *ScalarManager) Store(ctx context.Context, value string) error {
	return m.store.Set(ctx, m.id.Service, m.id.Account, value)
}

// Read resolves the secret from the source chain. Absence in every source
// reports driven.ErrSecretNotFound; any other error is a backend fault.
func (m *ScalarManager) Read(ctx context.Context) (string, error) {
	res, err := m.resolver.Resolve(ctx, m.id)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}

// ReadOrRequest resolves the secret, falling back to a single interactive
// prompt when, and only when, no source has a value. The entered value is
// persisted to the backend before it is returned, so a following Read
// resolves without prompting. Backend faults propagate without prompting.
func (m *ScalarManager) ReadOrRequest(ctx context.Context) (string, error) {
	value, err := m.Read(ctx)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, driven.ErrSecretNotFound) {
		return "", err
	}
	return m.Request(ctx)
}

// Request prompts for a value, labeled with the account name, and persists
// it to the backend without consulting any source first. It reports
// driven.ErrPromptUnavailable when no prompter is wired.
func (m *ScalarManager) Request(ctx context.Context) (string, error) {
	if m.prompter == nil {
		return "", fmt.Errorf("request %s/%s: %w", m.id.Service, m.id.Account, driven.ErrPromptUnavailable)
	}

	value, err := m.prompter.Prompt(m.id.Account)
	if err != nil {
		return "", fmt.Errorf("request %s/%s: %w", m.id.Service, m.id.Account, err)
	}
	if err := m.Store(ctx, value); err != nil {
		return "", err
	}

	slog.Debug("secret stored from prompt",
		"service", m.id.Service,
		"account", m.id.Account,
	)
	return value, nil
}

// Delete removes the backend entry. Deleting an absent entry succeeds:
// Delete establishes absence rather than reporting it.
func (m *ScalarManager) Delete(ctx context.Context) error {
	return m.store.Delete(ctx, m.id.Service, m.id.Account)
}
