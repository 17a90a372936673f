package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/spf13/cobra"
)

var errQuotaExhausted = errors.New("daily quota exhausted")

func newCanActCmd(app *app) *cobra.Command {
	var accountID string
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "can-act <action>",
		Short: "Report whether one more action fits today's quota (exit status 1 when it does not)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := format.validate(); err != nil {
				return err
			}

			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			account, err := resolveAccount(cmd.Context(), app, accountID)
			if err != nil {
				return err
			}
			rt, err := app.runtimeFor(cmd.Context(), account, logger)
			if err != nil {
				return err
			}

			result, err := rt.quotas.CanAct(cmd.Context(), account, domain.ParseActionType(args[0]))
			if err != nil {
				return err
			}

			if format.structured() {
				if err := format.write(cmd, result); err != nil {
					return err
				}
			} else {
				verdict := "allowed"
				if !result.Allowed {
					verdict = "denied"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%d/%d used today)\n",
					result.Account, result.Action, verdict, result.Used, result.Limit)
			}

			if !result.Allowed {
				cmd.SilenceErrors = true
				return fmt.Errorf("%s %s: %w", result.Account, result.Action, errQuotaExhausted)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (default: the only registered account)")
	format.register(cmd)

	return cmd
}

func newRecordCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "record <action> <target>",
		Short: "Record an action performed outside a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			account, err := resolveAccount(cmd.Context(), app, accountID)
			if err != nil {
				return err
			}
			rt, err := app.runtimeFor(cmd.Context(), account, logger)
			if err != nil {
				return err
			}

			record, err := rt.quotas.Record(cmd.Context(), account, domain.ParseActionType(args[0]), args[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %s for %s at %s\n",
				record.Type, sanitizeForTerminal(record.Target), account.ID, record.At.Format(time.RFC3339))
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (default: the only registered account)")

	return cmd
}
