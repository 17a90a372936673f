package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pacer",
		Short:         "pacer: quota-aware, human-paced action sessions",
		Long:          "pacer keeps a per-account ledger of platform actions, enforces warmed-up daily quotas, and runs engagement sessions with human-like timing through an external action client.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newStatusCmd(app),
		newCanActCmd(app),
		newRecordCmd(app),
		newSessionsCmd(app),
		newPolicyCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
