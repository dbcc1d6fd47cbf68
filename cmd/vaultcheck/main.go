package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ericfisherdev/keyvault/internal/adapter/driven/keychain"
	"github.com/ericfisherdev/keyvault/internal/adapter/driven/sqlitevault"
	"github.com/ericfisherdev/keyvault/internal/config"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

func main() {
	os.Exit(check())
}

// check performs a set/get/delete probe against the configured backend so
// container healthchecks and provisioning scripts can verify secret
// storage end to end before anything depends on it.
func check() int {
	cfg, err := config.Load(os.Getenv("KEYVAULT_CONFIG"))
	if err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var store driven.SecretStore
	switch cfg.Backend {
	case config.BackendVault:
		key, err := sqlitevault.DefaultKey()
		if err != nil {
			return fail(err)
		}
		db, err := sqlitevault.NewDB(cfg.VaultPath)
		if err != nil {
			return fail(err)
		}
		defer func() { _ = db.Close() }()
		if err := sqlitevault.RunMigrations(db.Writer); err != nil {
			return fail(err)
		}
		store = sqlitevault.NewSecretRepo(db, key)
	default:
		store = keychain.Store{}
	}

	const account = "vaultcheck-probe"
	if err := store.Set(ctx, cfg.Service, account, "ok"); err != nil {
		return fail(err)
	}
	value, err := store.Get(ctx, cfg.Service, account)
	if err != nil {
		return fail(err)
	}
	if value != "ok" {
		return fail(fmt.Errorf("probe read back %q, want %q", value, "ok"))
	}
	if err := store.Delete(ctx, cfg.Service, account); err != nil {
		return fail(err)
	}

	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
