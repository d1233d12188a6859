package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/domain"
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scenarios"},
	Short:   "Drive scenario states",
	Long: `Drive the state of scenarios on the Phiremock server.

Examples:
  phiremockctl scenario set checkout paid
  phiremockctl scenario reset`,
}

var scenarioSetCmd = &cobra.Command{
	Use:   "set <name> <state>",
	Short: "Put a scenario into a state",
	Args:  cobra.ExactArgs(2),
	RunE:  runScenarioSet,
}

var scenarioResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Move every scenario back to its initial state",
	Args:  cobra.NoArgs,
	RunE:  runScenarioReset,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioSetCmd)
	scenarioCmd.AddCommand(scenarioResetCmd)
}

func runScenarioSet(cmd *cobra.Command, args []string) error {
	info, err := domain.NewScenarioStateInfo(args[0], args[1])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.SetScenarioState(cmd.Context(), info); err != nil {
		return err
	}

	printResult(info, func() {
		fmt.Printf("Scenario %s is now in state %s\n", info.Name, info.State)
	})
	return nil
}

func runScenarioReset(cmd *cobra.Command, _ []string) error {
	return runVoid(cmd.Context(), "scenarios", "reset", "Reset all scenarios",
		func(ctx context.Context) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.ResetScenarios(ctx)
		})
}
