package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keyvault/internal/adapter/driven/jsoncodec"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// userProfile mirrors the kind of record structured managers hold.
type userProfile struct {
	Username string `json:"username"`
	Age      int    `json:"age"`
}

func newProfileManager(store *memStore, env mapEnv, prompter *scriptPrompter) *StructManager[userProfile] {
	var envSource driven.EnvSource
	if env != nil {
		envSource = env
	}
	var p driven.Prompter
	if prompter != nil {
		p = prompter
	}
	return NewStructManager[userProfile]("my_system", "user_profile", store, envSource, p, jsoncodec.Codec{})
}

func TestStructManager_StoreAndRead(t *testing.T) {
	manager := newProfileManager(newMemStore(), nil, nil)
	ctx := context.Background()

	in := userProfile{Username: "john_doe", Age: 30}
	require.NoError(t, manager.Store(ctx, in))

	out, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStructManager_ReadMissing(t *testing.T) {
	manager := newProfileManager(newMemStore(), nil, nil)

	_, err := manager.Read(context.Background())
	assert.ErrorIs(t, err, driven.ErrSecretNotFound)
}

func TestStructManager_ReadMalformedPayload(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "my_system", "user_profile", "not json"))
	manager := newProfileManager(store, nil, nil)

	_, err := manager.Read(context.Background())
	assert.ErrorIs(t, err, driven.ErrMalformedSecret)
	assert.NotErrorIs(t, err, driven.ErrSecretNotFound,
		"an occupied but invalid slot is not absence")
}

func TestStructManager_ReadOrRequest_PromptsPerFieldInDeclaredOrder(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"john_doe", "30"}}
	manager := newProfileManager(store, nil, prompter)
	ctx := context.Background()

	got, err := manager.ReadOrRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, userProfile{Username: "john_doe", Age: 30}, got)
	assert.Equal(t, []string{"username", "age"}, prompter.labels,
		"labels come from the JSON tag names in declared order")

	// The assembled record was persisted, so a following Read needs no prompt.
	again, err := manager.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Len(t, prompter.labels, 2)
}

func TestStructManager_ReadOrRequest_RepromptsOnUnparsableInput(t *testing.T) {
	prompter := &scriptPrompter{inputs: []string{"john_doe", "thirty", "30"}}
	manager := newProfileManager(newMemStore(), nil, prompter)

	got, err := manager.ReadOrRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, userProfile{Username: "john_doe", Age: 30}, got)
	assert.Equal(t, []string{"username", "age", "age (integer)"}, prompter.labels)
}

func TestStructManager_ReadOrRequest_ExistingValueSkipsPrompt(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"never used"}}
	manager := newProfileManager(store, nil, prompter)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, userProfile{Username: "john_doe", Age: 30}))

	got, err := manager.ReadOrRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, userProfile{Username: "john_doe", Age: 30}, got)
	assert.Empty(t, prompter.labels)
}

func TestStructManager_ReadOrRequest_MalformedPayloadDoesNotPrompt(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "my_system", "user_profile", "{broken"))
	prompter := &scriptPrompter{inputs: []string{"never used"}}
	manager := newProfileManager(store, nil, prompter)

	_, err := manager.ReadOrRequest(context.Background())
	assert.ErrorIs(t, err, driven.ErrMalformedSecret)
	assert.Empty(t, prompter.labels)
}

func TestStructManager_ReadOrRequest_InputExhaustionMidStruct(t *testing.T) {
	store := newMemStore()
	prompter := &scriptPrompter{inputs: []string{"john_doe"}}
	manager := newProfileManager(store, nil, prompter)

	_, err := manager.ReadOrRequest(context.Background())
	assert.ErrorIs(t, err, driven.ErrPromptUnavailable)
	assert.Empty(t, store.values, "a partially collected record is never stored")
}

func TestStructManager_ReadOrRequest_EnvironmentPayloadDecodes(t *testing.T) {
	env := mapEnv{"user_profile": `{"username":"john_doe","age":30}`}
	prompter := &scriptPrompter{}
	manager := newProfileManager(newMemStore(), env, prompter)

	got, err := manager.ReadOrRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, userProfile{Username: "john_doe", Age: 30}, got)
	assert.Empty(t, prompter.labels)
}

func TestStructManager_Request_UnsupportedFieldFailsBeforePrompting(t *testing.T) {
	type badRecord struct {
		Tags []string `json:"tags"`
	}
	prompter := &scriptPrompter{inputs: []string{"never used"}}
	manager := NewStructManager[badRecord]("my_system", "bad_record", newMemStore(), nil, prompter, jsoncodec.Codec{})

	_, err := manager.Request(context.Background())
	require.Error(t, err)
	assert.Empty(t, prompter.labels)
}

func TestStructManager_DeleteThenRead(t *testing.T) {
	manager := newProfileManager(newMemStore(), nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Store(ctx, userProfile{Username: "john_doe", Age: 30}))
	require.NoError(t, manager.Delete(ctx))

	_, err := manager.Read(ctx)
	assert.ErrorIs(t, err, driven.ErrSecretNotFound)
}

func TestStructManager_ReadOrRequest_NoPrompterWired(t *testing.T) {
	manager := newProfileManager(newMemStore(), nil, nil)

	_, err := manager.ReadOrRequest(context.Background())
	assert.ErrorIs(t, err, driven.ErrPromptUnavailable)
}

func TestStructManager_StoreFailureSurfaces(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	manager := newProfileManager(store, nil, nil)

	err := manager.Store(context.Background(), userProfile{Username: "john_doe", Age: 30})
	assert.Error(t, err)
}
