package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
		newCredentialCmd(app),
	)

	return cmd
}

func newAccountAddCmd(app *app) *cobra.Command {
	var name string
	var createdOn string
	var policyPath string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Register an account or update its name, creation date and policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := domain.Account{
				ID:         domain.AccountID(args[0]),
				Name:       name,
				PolicyPath: policyPath,
			}
			if createdOn != "" {
				parsed, err := time.Parse(time.DateOnly, createdOn)
				if err != nil {
					return fmt.Errorf("parse --created-on: expected YYYY-MM-DD: %w", err)
				}
				account.CreatedOn = parsed
			}

			saved, err := app.accountService.AddAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account %s saved (age %s)\n", saved.ID, saved.Age(app.clock.Now()))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&createdOn, "created-on", "", "Account creation date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&policyPath, "policy", "", "Policy file for this account (default: policy.path)")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.accountService.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			now := app.clock.Now()
			for _, account := range accounts {
				credential := "-"
				if account.CredentialRef != "" {
					credential = "credential"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					account.ID,
					sanitizeForTerminal(account.Name),
					account.Age(now),
					credential,
				)
			}

			return nil
		},
	}
}
