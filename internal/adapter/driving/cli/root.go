// Package cli is the driving adapter exposing the secret managers as a
// command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/keyvault/internal/application"
	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Deps carries the wired collaborators the commands operate on. The
// composition root decides which backend, whether the environment override
// is consulted, and where prompts go.
type Deps struct {
	Service  string              // default service namespace for identities
	Store    driven.SecretStore
	Lister   driven.SecretLister // nil when the backend cannot enumerate
	Env      driven.EnvSource    // nil when the override path is disabled
	Prompter driven.Prompter
	Codec    driven.Codec
}

// NewRootCommand assembles the keyvault command tree over deps.
func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "keyvault",
		Short:         "Resolve and persist secrets",
		Long:          "Keyvault stores secrets in the OS keychain or an encrypted vault,\nresolving reads through the environment, the backend, and an interactive\nprompt, in that order.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("service", deps.Service, "service namespace for the secret identity")

	setCmd := &cobra.Command{
		Use:   "set <account> [value]",
		Short: "Store a secret, prompting when the value is omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  deps.runSet,
	}
	root.AddCommand(setCmd)

	getCmd := &cobra.Command{
		Use:   "get <account>",
		Short: "Resolve a secret and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  deps.runGet,
	}
	root.AddCommand(getCmd)

	requestCmd := &cobra.Command{
		Use:   "request <account>",
		Short: "Resolve a secret, prompting and persisting when absent",
		Args:  cobra.ExactArgs(1),
		RunE:  deps.runRequest,
	}
	root.AddCommand(requestCmd)

	deleteCmd := &cobra.Command{
		Use:     "delete <account>",
		Short:   "Remove a secret; removing an absent one succeeds",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE:    deps.runDelete,
	}
	root.AddCommand(deleteCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored entries for the service, without values",
		Args:  cobra.NoArgs,
		RunE:  deps.runList,
	}
	root.AddCommand(listCmd)

	loginCmd := &cobra.Command{
		Use:   "login <account>",
		Short: "Resolve a stored username/password record, prompting per field when absent",
		Args:  cobra.ExactArgs(1),
		RunE:  deps.runLogin,
	}
	loginCmd.Flags().Bool("show", false, "print the stored fields instead of a summary")
	root.AddCommand(loginCmd)

	return root
}

// scalar builds the manager for one scalar identity under the service
// chosen by flags.
func (d Deps) scalar(cmd *cobra.Command, account string) *application.ScalarManager {
	service, _ := cmd.Flags().GetString("service")
	return application.NewScalarManager(service, account, d.Store, d.Env, d.Prompter)
}

func (d Deps) runSet(cmd *cobra.Command, args []string) error {
	manager := d.scalar(cmd, args[0])

	if len(args) == 2 {
		if err := manager.Store(cmd.Context(), args[1]); err != nil {
			return err
		}
	} else {
		if _, err := manager.Request(cmd.Context()); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func (d Deps) runGet(cmd *cobra.Command, args []string) error {
	manager := d.scalar(cmd, args[0])

	value, err := manager.Read(cmd.Context())
	if errors.Is(err, driven.ErrSecretNotFound) {
		id := manager.Identity()
		return fmt.Errorf("secret %s/%s not found", id.Service, id.Account)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func (d Deps) runRequest(cmd *cobra.Command, args []string) error {
	manager := d.scalar(cmd, args[0])

	value, err := manager.ReadOrRequest(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func (d Deps) runDelete(cmd *cobra.Command, args []string) error {
	return d.scalar(cmd, args[0]).Delete(cmd.Context())
}

func (d Deps) runList(cmd *cobra.Command, args []string) error {
	if d.Lister == nil {
		return errors.New("the configured backend cannot enumerate entries; listing needs the vault backend")
	}

	service, _ := cmd.Flags().GetString("service")
	entries, err := d.Lister.List(cmd.Context(), service)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintf(out, "%s\t%s\n", entry.Account, entry.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (d Deps) runLogin(cmd *cobra.Command, args []string) error {
	service, _ := cmd.Flags().GetString("service")
	manager := application.NewStructManager[model.UserCredential](
		service, args[0], d.Store, d.Env, d.Prompter, d.Codec,
	)

	cred, err := manager.ReadOrRequest(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if show, _ := cmd.Flags().GetBool("show"); show {
		fmt.Fprintf(out, "username: %s\npassword: %s\n", cred.Username, cred.Password)
		return nil
	}
	fmt.Fprintf(out, "logged in as %s\n", cred.Username)
	return nil
}
