// Package application contains the resolution and persistence services
// between the driving surfaces and the secret storage ports.
package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Resolution is the outcome of a successful resolve: the secret value and
// the source that produced it.
type Resolution struct {
	Value  string
	Source model.Source
}

// Resolver walks the ordered secret sources for an identity: the process
// environment first, when wired, then the backend store. The order is
// fixed and not configurable per call.
type Resolver struct {
	store driven.SecretStore
	env   driven.EnvSource // nil when the override path is not wired.
}

// NewResolver creates a Resolver over the given backend. env may be nil,
// in which case the environment is never consulted.
func NewResolver(store driven.SecretStore, env driven.EnvSource) *Resolver {
	return &Resolver{store: store, env: env}
}

// Resolve returns the value for id from the highest-priority source that
// has one, along with that source. The environment matches only when the
// variable named by id.Account is present with a non-empty value; an
// environment hit never touches the backend. Exhaustion of all sources
// reports driven.ErrSecretNotFound; any other error is a backend fault.
func (r *Resolver) Resolve(ctx context.Context, id model.Identity) (Resolution, error) {
	if r.env != nil {
		if value, ok := r.env.Lookup(id.Account); ok && value != "" {
			slog.Debug("secret resolved",
				"service", id.Service,
				"account", id.Account,
				"source", model.SourceEnvironment,
			)
			return Resolution{Value: value, Source: model.SourceEnvironment}, nil
		}
	}

	value, err := r.store.Get(ctx, id.Service, id.Account)
	if err != nil {
		return Resolution{}, err
	}

	slog.Debug("secret resolved",
		"service", id.Service,
		"account", id.Account,
		"source", model.SourceBackend,
	)
	return Resolution{Value: value, Source: model.SourceBackend}, nil
}
