// Package model holds the domain types shared across ports and services.
package model

// Identity addresses one secret slot in a backend store. Service namespaces
// the owning application ("my_system"); Account names the secret within it
// ("user_profile"). By convention Account doubles as the environment
// variable consulted by the override path.
type Identity struct {
	Service string
	Account string
}

// Source identifies where a resolved secret value came from.
type Source string

const (
	// SourceEnvironment means the value was read from an environment
	// variable named after the identity's account.
	SourceEnvironment Source = "environment"
	// SourceBackend means the value was read from the backend store.
	SourceBackend Source = "backend"
	// SourcePrompt means the value was collected interactively and has
	// been written back to the backend store.
	SourcePrompt Source = "prompt"
)
