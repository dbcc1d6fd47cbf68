package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

func TestScalarManager_StoreAndRead(t *testing.T) {
	store := newMemStore()
	manager := NewScalarManager("my_service", "my_key", store, nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, "my_secret_value"))

	got, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my_secret_value", got)
}

func TestScalarManager_ReadMissing(t *testing.T) {
	manager := NewScalarManager("my_service", "my_key", newMemStore(), nil, nil)

	_, err := manager.Read(context.Background())
	assert.ErrorIs(t, err, driven.ErrSecretNotFound)
}

func TestScalarManager_Identity(t *testing.T) {
	manager := NewScalarManager("my_service", "my_key", newMemStore(), nil, nil)

	assert.Equal(t, model.Identity{Service: "my_service", Account: "my_key"}, manager.Identity())
}

func TestScalarManager_ReadOrRequest_PromptsOnceAndPersists(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"my_secret_value"}}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)
	ctx := context.Background()

	got, err := manager.ReadOrRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my_secret_value", got)
	assert.Equal(t, []string{"my_key"}, prompter.labels, "prompt label is the account name")

	// The entered value was persisted, so a following Read needs no prompt.
	again, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my_secret_value", again)
	assert.Len(t, prompter.labels, 1)
}

func TestScalarManager_ReadOrRequest_ExistingValueSkipsPrompt(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"never used"}}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, "stored"))

	got, err := manager.ReadOrRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stored", got)
	assert.Empty(t, prompter.labels)
}

func TestScalarManager_ReadOrRequest_EnvironmentSkipsPromptAndBackendWrite(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{}
	manager := NewScalarManager("my_service", "my_key", store, mapEnv{"my_key": "from-env"}, prompter)

	got, err := manager.ReadOrRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
	assert.Empty(t, prompter.labels)
	assert.Empty(t, store.values, "an environment hit is never written back")
}

func TestScalarManager_ReadOrRequest_BackendFaultDoesNotPrompt(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	prompter := &scriptPrompter{inputs: []string{"never used"}}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)

	_, err := manager.ReadOrRequest(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrSecretNotFound)
	assert.Empty(t, prompter.labels)
}

func TestScalarManager_ReadOrRequest_NoPrompterWired(t *testing.T) {
	manager := NewScalarManager("my_service", "my_key", newMemStore(), nil, nil)

	_, err := manager.ReadOrRequest(context.Background())
	assert.ErrorIs(t, err, driven.ErrPromptUnavailable)
}

func TestScalarManager_ReadOrRequest_PromptFailureSurfaces(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{err: errors.New("stdin closed")}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)

	_, err := manager.ReadOrRequest(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.values, "nothing is stored when the prompt fails")
}

func TestScalarManager_ReadOrRequest_StoreFailureSurfaces(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	prompter := &scriptPrompter{inputs: []string{"my_secret_value"}}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)

	_, err := manager.ReadOrRequest(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrSecretNotFound,
		"a successful prompt must not be reported as not-found")
}

func TestScalarManager_Request_OverwritesWithoutReading(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"rotated"}}
	manager := NewScalarManager("my_service", "my_key", store, nil, prompter)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, "old"))

	got, err := manager.Request(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got)

	stored, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rotated", stored)
}

func TestScalarManager_DeleteThenRead(t *testing.T) {
	store := newMemStore()
	manager := NewScalarManager("my_service", "my_key", store, nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, "my_secret_value"))
	require.NoError(t, manager.Delete(ctx))

	_, err := manager.Read(ctx)
	assert.ErrorIs(t, err, driven.ErrSecretNotFound)
}

func TestScalarManager_DeleteWithoutStore(t *testing.T) {
	manager := NewScalarManager("my_service", "my_key", newMemStore(), nil, nil)

	assert.NoError(t, manager.Delete(context.Background()))
}
