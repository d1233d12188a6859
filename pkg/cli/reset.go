package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the server to its initial state",
	Long: `Restore the server to its initial state.

Expectations are replaced by the ones the server was started with, and
scenarios and request counters are reset. Running it twice has the same
effect as running it once.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	return runVoid(cmd.Context(), "server", "reset", "Server reset",
		func(ctx context.Context) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.Reset(ctx)
		})
}
