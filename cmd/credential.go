package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/pacer/internal/domain"
	"github.com/spf13/cobra"
)

func newCredentialCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the credential handed to the action client",
	}

	cmd.AddCommand(newCredentialSetCmd(app), newCredentialRemoveCmd(app))

	return cmd
}

func newCredentialSetCmd(app *app) *cobra.Command {
	var value string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Store an account credential in the secret store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read credential from stdin: %w", err)
				}
				value = strings.TrimRight(string(data), "\r\n")
			}
			if value == "" {
				return errors.New("credential value is empty: pass --value or --stdin")
			}

			return app.accountService.SetCredential(cmd.Context(), domain.AccountID(args[0]), value)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Credential value")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the credential from stdin")
	cmd.MarkFlagsMutuallyExclusive("value", "stdin")

	return cmd
}

func newCredentialRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an account credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.accountService.RemoveCredential(cmd.Context(), domain.AccountID(args[0]))
		},
	}
}
