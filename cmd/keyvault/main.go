package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericfisherdev/keyvault/internal/adapter/driven/envsource"
	"github.com/ericfisherdev/keyvault/internal/adapter/driven/jsoncodec"
	"github.com/ericfisherdev/keyvault/internal/adapter/driven/keychain"
	"github.com/ericfisherdev/keyvault/internal/adapter/driven/sqlitevault"
	"github.com/ericfisherdev/keyvault/internal/adapter/driven/terminal"
	"github.com/ericfisherdev/keyvault/internal/adapter/driving/cli"
	"github.com/ericfisherdev/keyvault/internal/config"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (KEYVAULT_CONFIG names an explicit file).
	cfg, err := config.Load(os.Getenv("KEYVAULT_CONFIG"))
	if err != nil {
		return err
	}

	// 2. Install the log handler at the configured level, on stderr so
	// command output stays clean on stdout.
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wire the configured backend.
	var (
		store  driven.SecretStore
		lister driven.SecretLister
	)
	switch cfg.Backend {
	case config.BackendVault:
		key, err := sqlitevault.DefaultKey()
		if err != nil {
			return err
		}
		db, err := sqlitevault.NewDB(cfg.VaultPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing vault", "error", closeErr)
			}
		}()
		if err := sqlitevault.RunMigrations(db.Writer); err != nil {
			return err
		}
		repo := sqlitevault.NewSecretRepo(db, key)
		store, lister = repo, repo
		slog.Debug("vault backend ready", "path", cfg.VaultPath)
	default:
		store = keychain.Store{}
		slog.Debug("keychain backend ready")
	}

	// 5. Wire the environment override only when enabled; an unwired
	// source means resolution never consults the environment.
	var env driven.EnvSource
	if cfg.EnvOverride {
		env = envsource.OS{}
	}

	// 6. Assemble the command tree. Prompts go to stderr so redirected
	// stdout stays clean for command output.
	root := cli.NewRootCommand(cli.Deps{
		Service:  cfg.Service,
		Store:    store,
		Lister:   lister,
		Env:      env,
		Prompter: terminal.New(os.Stdin, os.Stderr),
		Codec:    jsoncodec.Codec{},
	})

	// 7. Run the selected command under the signal context.
	return root.ExecuteContext(ctx)
}
