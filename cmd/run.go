package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/pacer/internal/application"
	"github.com/bnema/pacer/internal/config"
	"github.com/bnema/pacer/internal/domain"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var accountID string
	var seed uint64
	var progress bool
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "run <session>",
		Short: "Run one session type for an account",
		Long:  "Run walks the session's phases in order, acting on candidates with human-like pauses until each phase's source, size or daily quota runs out. Every performed action is written to the ledger immediately.",
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
			scheduler, err := app.newScheduler(rt, newRandom(seed), logger)
			if err != nil {
				return err
			}

			var summary domain.SessionSummary
			runSession := func(ctx context.Context) error {
				var runErr error
				summary, runErr = scheduler.Run(ctx, account, args[0])
				return runErr
			}

			if progress {
				label := fmt.Sprintf("Running %s session for %s...", args[0], account.ID)
				err = runSessionSpinner(cmd.Context(), cmd.ErrOrStderr(), label, runSession)
			} else {
				err = runSession(cmd.Context())
			}

			if path := app.cfg.GetString(config.MetricsTextfileKey); path != "" {
				if metricsErr := application.WriteMetrics(path); metricsErr != nil {
					logger.Warn("metrics textfile not written", "path", path, "error", metricsErr)
				}
			}

			if summary.RunID != "" {
				if writeErr := writeSummary(cmd, summary, format); writeErr != nil {
					return writeErr
				}
			}

			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (default: the only registered account)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the timing model (0 draws a random seed)")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a spinner on stderr while the session runs")
	format.register(cmd)

	return cmd
}

func writeSummary(cmd *cobra.Command, summary domain.SessionSummary, format outputFormat) error {
	if format.structured() {
		return format.write(cmd, summary)
	}

	return writeSummaryText(cmd.OutOrStdout(), summary)
}

func writeSummaryText(w io.Writer, summary domain.SessionSummary) error {
	if summary.Skipped {
		_, err := fmt.Fprintf(w, "session %s for %s skipped today (run %s)\n", summary.SessionType, summary.Account, summary.RunID)
		return err
	}

	elapsed := summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second)
	_, _ = fmt.Fprintf(w, "session %s for %s finished in %s (run %s)\n", summary.SessionType, summary.Account, elapsed, summary.RunID)
	for _, phase := range summary.Phases {
		_, _ = fmt.Fprintf(w, "  %-10s %-16s visited %-3d acted %-3d watched %-3d skipped %-3d failed %-3d stop %s\n",
			phase.Action, phase.Source, phase.Visited, phase.Acted, phase.Watched, phase.Skipped, phase.Failed, phase.Stop)
	}

	_, err := fmt.Fprintf(w, "recorded %d action(s)", summary.Total())
	if err != nil {
		return err
	}
	for _, action := range domain.SortedActionTypes(summary.Counts) {
		_, _ = fmt.Fprintf(w, " %s=%d", action, summary.Counts[action])
	}
	_, err = fmt.Fprintln(w)
	return err
}
