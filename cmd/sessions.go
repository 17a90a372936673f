package cmd

import (
	"fmt"
	"strings"

	tomlrepo "github.com/bnema/pacer/internal/adapters/repo/toml"
	"github.com/bnema/pacer/internal/config"
	"github.com/bnema/pacer/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List the session types of an account's policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := domain.Account{}
			if accountID != "" {
				resolved, err := resolveAccount(cmd.Context(), app, accountID)
				if err != nil {
					return err
				}
				account = resolved
			}

			policy, err := app.policyFor(account)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSessions(policy))
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account whose policy to show (default: policy.path)")

	return cmd
}

func renderSessions(policy domain.Policy) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("SESSION", "EXEMPT", "PHASES")

	for _, name := range policy.SessionNames() {
		session := policy.Sessions[name]
		phases := make([]string, 0, len(session.Phases))
		for _, phase := range session.Phases {
			phases = append(phases, fmt.Sprintf("%s<%s:%d", phase.Action, phase.Source, phase.Size))
		}
		if len(phases) == 0 {
			phases = append(phases, "-")
		}
		t.Row(name, fmt.Sprintf("%t", session.Exempt), strings.Join(phases, " "))
	}

	return t.String()
}

func newPolicyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect policy files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check a policy file (default: policy.path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.cfg.GetString(config.PolicyPathKey)
			if len(args) == 1 {
				path = args[0]
			}

			policy, err := tomlrepo.LoadPolicy(path)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d quotas, %d sessions, %d sources)\n",
				path, len(policy.Quotas), len(policy.Sessions), len(policy.Sources))
			return err
		},
	})

	return cmd
}
