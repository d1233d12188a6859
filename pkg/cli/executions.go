package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/internal/jsonpath"
	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/cli/internal/output"
)

var (
	executionConditions conditionFlags
	executionsJSONPath  string
)

var executionsCmd = &cobra.Command{
	Use:     "executions",
	Aliases: []string{"execution"},
	Short:   "Inspect the requests received by the server",
	Long: `Inspect and reset the requests received by the Phiremock server.

Requests are selected with the same condition flags used to create
expectations. Without any condition every request is selected.

Examples:
  phiremockctl executions count --method GET --url /users
  phiremockctl executions list --url-matches '~^/orders~' --jsonpath '$[*].body'
  phiremockctl executions reset`,
}

var executionsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the requests matching the conditions",
	Args:  cobra.NoArgs,
	RunE:  runExecutionsCount,
}

var executionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the requests matching the conditions",
	Long: `List the requests matching the conditions as JSON.

--jsonpath selects part of the listing; a single match is printed as the
value itself.`,
	Args: cobra.NoArgs,
	RunE: runExecutionsList,
}

var executionsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every request counter to zero",
	Args:  cobra.NoArgs,
	RunE:  runExecutionsReset,
}

func init() {
	rootCmd.AddCommand(executionsCmd)
	executionsCmd.AddCommand(executionsCountCmd)
	executionsCmd.AddCommand(executionsListCmd)
	executionsCmd.AddCommand(executionsResetCmd)

	// Both commands share the same condition variables; only one runs per process.
	executionConditions.register(executionsCountCmd)
	executionConditions.register(executionsListCmd)
	executionsListCmd.Flags().StringVar(&executionsJSONPath, "jsonpath", "", "JSONPath expression applied to the listing")
}

// anyURL is the URL pattern used when no request condition is given, so that
// every received request is selected.
const anyURL = "~.*~"

func executionsQuery() (builder.ConditionsBuilder, error) {
	query, err := executionConditions.build()
	if err != nil {
		return query, err
	}
	if !executionConditions.hasRequestConditions() {
		query = query.AndURL(builder.Matches(anyURL))
	}
	return query, nil
}

func runExecutionsCount(cmd *cobra.Command, _ []string) error {
	query, err := executionsQuery()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	n, err := client.CountExecutions(cmd.Context(), query)
	if err != nil {
		return err
	}

	printResult(struct {
		Count int `json:"count"`
	}{Count: n}, func() {
		fmt.Println(n)
	})
	return nil
}

func runExecutionsList(cmd *cobra.Command, _ []string) error {
	var expr jsonpath.Expr
	if executionsJSONPath != "" {
		var err error
		if expr, err = jsonpath.Compile(executionsJSONPath); err != nil {
			return err
		}
	}

	query, err := executionsQuery()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	list, err := client.ListExecutions(cmd.Context(), query)
	if err != nil {
		return err
	}

	if executionsJSONPath != "" {
		return output.JSON(expr.Project(list))
	}
	return output.JSON(list)
}

func runExecutionsReset(cmd *cobra.Command, _ []string) error {
	return runVoid(cmd.Context(), "executions", "reset", "Reset all request counters",
		func(ctx context.Context) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.ResetRequestsCounter(ctx)
		})
}
