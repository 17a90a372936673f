package cmd

import (
	"fmt"
	"log/slog"

	statusadapter "github.com/bnema/pacer/internal/adapters/render/status"
	"github.com/bnema/pacer/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var accountID string
	var hideUnused bool
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's quota usage per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := format.validate(); err != nil {
				return err
			}

			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			statuses, err := loadStatuses(cmd, app, accountID, logger)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, hideUnused, format)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (default: all accounts)")
	cmd.Flags().BoolVar(&hideUnused, "hide-unused", false, "Hide action types with no quota and no use today")
	format.register(cmd)

	return cmd
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.Status, hideUnused bool, format outputFormat) error {
	if format.structured() {
		return format.write(cmd, statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:        app.clock.Now(),
		HideUnused: hideUnused,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func loadStatuses(cmd *cobra.Command, app *app, accountID string, logger *slog.Logger) ([]application.Status, error) {
	accounts, err := resolveAccounts(cmd.Context(), app, accountID)
	if err != nil {
		return nil, err
	}

	statuses := make([]application.Status, 0, len(accounts))
	for _, account := range accounts {
		rt, err := app.runtimeFor(cmd.Context(), account, logger)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.ID, err)
		}

		status, err := rt.quotas.Status(cmd.Context(), account)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.ID, err)
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
