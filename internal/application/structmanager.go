package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// StructManager binds a structured secret of type T to a (service,
// account) identity. Values are encoded to a string through the codec and
// occupy the same kind of backend slot a scalar secret would, so a slot
// holds either form but never both.
type StructManager[T any] struct {
	scalar *ScalarManager
	codec  driven.Codec
}

// NewStructManager creates a manager for the structured secret addressed
// by (service, account). The nil rules for env and prompter match
// NewScalarManager.
func NewStructManager[T any](
	service, account string,
	store driven.SecretStore,
	env driven.EnvSource,
	prompter driven.Prompter,
	codec driven.Codec,
) *StructManager[T] {
	return &StructManager[T]{
		scalar: NewScalarManager(service, account, store, env, prompter),
		codec:  codec,
	}
}

// Identity returns the (service, account) pair this manager addresses.
func (m *StructManager[T]) Identity() model.Identity {
	return m.scalar.Identity()
}

// Store encodes value and writes it to the backend slot.
func (m *StructManager[T]) Store(ctx context.Context, value T) error {
	encoded, err := m.codec.Encode(value)
	if err != nil {
		return err
	}
	return m.scalar.Store(ctx, encoded)
}

// Read resolves the stored payload and decodes it into a T. A resolved
// payload that fails to decode reports driven.ErrMalformedSecret, which is
// distinct from absence: the slot is occupied, just not by a valid T.
func (m *StructManager[T]) Read(ctx context.Context) (T, error) {
	var zero T

	encoded, err := m.scalar.Read(ctx)
	if err != nil {
		return zero, err
	}

	var value T
	if err := m.codec.Decode(encoded, &value); err != nil {
		return zero, err
	}
	return value, nil
}

// ReadOrRequest resolves the stored value, falling back to interactive
// per-field entry when, and only when, no source has a payload. The
// assembled value is persisted before it is returned. Malformed payloads
// and backend faults propagate without prompting.
func (m *StructManager[T]) ReadOrRequest(ctx context.Context) (T, error) {
	value, err := m.Read(ctx)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, driven.ErrSecretNotFound) {
		var zero T
		return zero, err
	}
	return m.Request(ctx)
}

// Request collects one value per promptable field of T, in declared field
// order with labels from the JSON tag names, then persists the assembled
// record without consulting any source first.
func (m *StructManager[T]) Request(ctx context.Context) (T, error) {
	var zero T

	if m.scalar.prompter == nil {
		id := m.scalar.id
		return zero, fmt.Errorf("request %s/%s: %w", id.Service, id.Account, driven.ErrPromptUnavailable)
	}

	value, err := promptStruct[T](m.scalar.prompter)
	if err != nil {
		id := m.scalar.id
		return zero, fmt.Errorf("request %s/%s: %w", id.Service, id.Account, err)
	}
	if err := m.Store(ctx, value); err != nil {
		return zero, err
	}
	return value, nil
}

// Delete removes the backend entry. Deleting an absent entry succeeds.
func (m *StructManager[T]) Delete(ctx context.Context) error {
	return m.scalar.Delete(ctx)
}
