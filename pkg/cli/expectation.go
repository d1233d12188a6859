package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/cli/internal/flags"
	"github.com/getmockd/phiremock/pkg/cli/internal/output"
	"github.com/getmockd/phiremock/pkg/convert"
	"github.com/getmockd/phiremock/pkg/domain"
	"github.com/getmockd/phiremock/pkg/expectationfile"
)

var (
	createConditions       conditionFlags
	createStatus           int
	createResponseBody     string
	createResponseHeaders  flags.Headers
	createDelay            int
	createProxyTo          string
	createNewScenarioState string
	createPriority         int
	createInteractive      bool

	importRate       float64
	importNoValidate bool
	importClear      bool
)

var expectationCmd = &cobra.Command{
	Use:     "expectation",
	Aliases: []string{"expectations", "exp"},
	Short:   "Manage expectations",
	Long: `Manage the expectations configured on the Phiremock server.

An expectation pairs request conditions with either a mocked response or a
proxy target. Optional scenario fields make expectations stateful.

Examples:
  phiremockctl expectation create --method GET --url /users --response-body '[]'
  phiremockctl expectation import 'mocks/**/*.yaml'
  phiremockctl expectation validate mocks/*.json
  phiremockctl expectation list
  phiremockctl expectation clear`,
}

var expectationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an expectation",
	Long: `Create an expectation from flags, or from an interactive form with -i.

Exactly one of a response (--status, --response-body, --response-header,
--delay) or --proxy-to is used. A response with status 200 is created when
neither is given.

Examples:
  phiremockctl expectation create --method GET --url /users --status 200 --response-body '[]'
  phiremockctl expectation create --method POST --url-matches '~^/orders/\d+$~' --status 503 --delay 2000
  phiremockctl expectation create --url /legacy --proxy-to http://legacy.internal
  phiremockctl expectation create --url /pay --scenario checkout --scenario-state Scenario.START \
      --new-scenario-state paid --status 201
  phiremockctl expectation create -i`,
	Args: cobra.NoArgs,
	RunE: runExpectationCreate,
}

var expectationImportCmd = &cobra.Command{
	Use:   "import <glob>...",
	Short: "Create expectations from files",
	Long: `Create expectations from JSON, JSONC or YAML files.

Patterns support ** for recursive matching. A file may hold one
expectation or an array of them. Files are validated against the
expectation schema before anything is sent, unless --no-validate is set.
Expectations are sent as written in the file.

Examples:
  phiremockctl expectation import mocks/users.json
  phiremockctl expectation import 'mocks/**/*.{json,yaml}' --clear
  phiremockctl expectation import 'big/*.json' --rate 50`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpectationImport,
}

var expectationValidateCmd = &cobra.Command{
	Use:   "validate <glob>...",
	Short: "Validate expectation files without contacting the server",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpectationValidate,
}

var expectationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured expectations",
	Long: `List the expectations configured on the server.

With --json the expectations are printed in Phiremock's wire format.`,
	Args: cobra.NoArgs,
	RunE: runExpectationList,
}

var expectationClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every expectation",
	Args:  cobra.NoArgs,
	RunE:  runExpectationClear,
}

func init() {
	rootCmd.AddCommand(expectationCmd)
	expectationCmd.AddCommand(expectationCreateCmd)
	expectationCmd.AddCommand(expectationImportCmd)
	expectationCmd.AddCommand(expectationValidateCmd)
	expectationCmd.AddCommand(expectationListCmd)
	expectationCmd.AddCommand(expectationClearCmd)

	createConditions.register(expectationCreateCmd)
	fs := expectationCreateCmd.Flags()
	fs.IntVar(&createStatus, "status", 200, "Response status code")
	fs.StringVar(&createResponseBody, "response-body", "", "Response body (prefix with @ to read a file)")
	fs.Var(&createResponseHeaders, "response-header", "Response header as 'Name: value' (repeatable)")
	fs.IntVar(&createDelay, "delay", 0, "Response delay in milliseconds")
	fs.StringVar(&createProxyTo, "proxy-to", "", "Forward matching requests to this URL instead of responding")
	fs.StringVar(&createNewScenarioState, "new-scenario-state", "", "State the scenario moves to when the expectation matches")
	fs.IntVar(&createPriority, "priority", 0, "Expectation priority; higher wins")
	fs.BoolVarP(&createInteractive, "interactive", "i", false, "Fill in the expectation with an interactive form")

	expectationImportCmd.Flags().Float64Var(&importRate, "rate", 0, "Maximum expectations sent per second (0 = unlimited)")
	expectationImportCmd.Flags().BoolVar(&importNoValidate, "no-validate", false, "Send files without schema validation")
	expectationImportCmd.Flags().BoolVar(&importClear, "clear", false, "Remove existing expectations before importing")
}

func runExpectationCreate(cmd *cobra.Command, _ []string) error {
	if createInteractive {
		if err := runCreateForm(cmd); err != nil {
			return err
		}
	}

	b, err := expectationFromFlags(cmd)
	if err != nil {
		return err
	}
	e, err := b.Build()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.CreateExpectation(cmd.Context(), e); err != nil {
		return err
	}

	wire, err := convert.ExpectationToMap{}.Encode(e)
	if err != nil {
		return err
	}
	printResult(wire, func() {
		fmt.Printf("Created expectation: %s\n", summarizeRequest(e))
	})
	return nil
}

// expectationFromFlags assembles the expectation described by the create flags.
func expectationFromFlags(cmd *cobra.Command) (builder.ExpectationBuilder, error) {
	conditions, err := createConditions.build()
	if err != nil {
		return builder.ExpectationBuilder{}, err
	}
	eb := builder.NewExpectation(conditions)

	fs := cmd.Flags()
	responseSet := fs.Changed("status") || fs.Changed("response-body") || fs.Changed("response-header") || fs.Changed("delay")
	if createProxyTo != "" {
		if responseSet {
			return eb, errors.New("--proxy-to cannot be combined with response flags")
		}
		eb = eb.ThenProxyTo(createProxyTo)
	} else {
		body, err := readBodyArg(createResponseBody)
		if err != nil {
			return eb, err
		}
		rb := builder.Respond(createStatus).AndBody(body).AndDelayInMillis(createDelay)
		for _, h := range createResponseHeaders {
			rb = rb.AndHeader(h.Name, h.Value)
		}
		eb = eb.Then(rb)
	}

	if createNewScenarioState != "" {
		if createConditions.scenario == "" {
			return eb, errors.New("--new-scenario-state requires --scenario")
		}
		eb = eb.SetNewScenarioState(createNewScenarioState)
	}
	return eb.WithPriority(createPriority), nil
}

// readBodyArg returns s, or the content of the file it names with a leading @.
func readBodyArg(s string) (string, error) {
	if !strings.HasPrefix(s, "@") {
		return s, nil
	}
	data, err := os.ReadFile(s[1:])
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), nil
}

// importResult is the JSON output of expectation import.
type importResult struct {
	Imported int      `json:"imported"`
	Sources  []string `json:"sources"`
}

func runExpectationImport(cmd *cobra.Command, args []string) error {
	files, err := expectationfile.Load(args...)
	if err != nil {
		return err
	}

	if importNoValidate {
		output.Warn("skipping local validation, the server may reject some expectations")
	} else if err := validateAll(files); err != nil {
		return err
	}

	client, err := newRateLimitedClient(importRate)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if importClear {
		if err := client.ClearExpectations(ctx); err != nil {
			return err
		}
	}

	result := importResult{Sources: []string{}}
	for _, f := range files {
		if err := client.CreateExpectationFromJSON(ctx, f.JSON); err != nil {
			return fmt.Errorf("%s: %w (%d of %d imported)", f.Name(), err, result.Imported, len(files))
		}
		result.Imported++
		result.Sources = append(result.Sources, f.Name())
		logger.Debug("imported expectation", "source", f.Name())
	}

	printResult(result, func() {
		fmt.Printf("Imported %d expectation(s)\n", result.Imported)
	})
	return nil
}

// validationResult is one entry of the JSON output of expectation validate.
type validationResult struct {
	Source   string   `json:"source"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

func runExpectationValidate(_ *cobra.Command, args []string) error {
	files, err := expectationfile.Load(args...)
	if err != nil {
		return err
	}

	results := make([]validationResult, 0, len(files))
	invalid := 0
	for _, f := range files {
		r := validationResult{Source: f.Name(), Valid: true}
		if err := expectationfile.Validate(f); err != nil {
			invalid++
			r.Valid = false
			r.Problems = problemsOf(err)
		}
		results = append(results, r)
	}

	printList(results, func() {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("ok      %s\n", r.Source)
				continue
			}
			fmt.Printf("invalid %s\n", r.Source)
			for _, p := range r.Problems {
				fmt.Printf("        - %s\n", p)
			}
		}
	})

	if invalid > 0 {
		return fmt.Errorf("%d of %d expectation(s) are invalid", invalid, len(files))
	}
	return nil
}

// validateAll stops at the first invalid file.
func validateAll(files []expectationfile.File) error {
	for _, f := range files {
		if err := expectationfile.Validate(f); err != nil {
			return err
		}
	}
	return nil
}

func problemsOf(err error) []string {
	var verr *expectationfile.ValidationError
	if errors.As(err, &verr) {
		out := make([]string, len(verr.Problems))
		for i, p := range verr.Problems {
			out[i] = p.String()
		}
		return out
	}
	return []string{err.Error()}
}

func runExpectationList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	list, err := client.ListExpectations(cmd.Context())
	if err != nil {
		return err
	}

	wire := make([]map[string]interface{}, 0, len(list))
	for _, e := range list {
		m, err := convert.ExpectationToMap{}.Encode(e)
		if err != nil {
			return err
		}
		wire = append(wire, m)
	}

	printList(wire, func() {
		if len(list) == 0 {
			fmt.Println("No expectations configured")
			return
		}
		w := output.Table("#", "REQUEST", "THEN", "SCENARIO", "PRIORITY")
		for i, e := range list {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", i+1, summarizeRequest(e), summarizeAction(e), summarizeScenario(e), e.Priority)
		}
		_ = w.Flush()
	})
	return nil
}

func runExpectationClear(cmd *cobra.Command, _ []string) error {
	return runVoid(cmd.Context(), "expectations", "clear", "Cleared all expectations",
		func(ctx context.Context) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.ClearExpectations(ctx)
		})
}

func summarizeRequest(e *domain.Expectation) string {
	if e.Request == nil || e.Request.IsEmpty() {
		return "*"
	}
	parts := []string{}
	if e.Request.Method != "" {
		parts = append(parts, e.Request.Method)
	}
	if e.Request.URL != nil {
		parts = append(parts, conditionString(*e.Request.URL))
	}
	if e.Request.Body != nil {
		parts = append(parts, "body "+conditionString(*e.Request.Body))
	}
	if n := len(e.Request.Headers); n > 0 {
		parts = append(parts, "+"+strconv.Itoa(n)+" header(s)")
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func conditionString(c domain.Condition) string {
	if c.Matcher == domain.MatcherIsEqualTo {
		return output.Truncate(c.Value, 0)
	}
	return string(c.Matcher) + "(" + output.Truncate(c.Value, 0) + ")"
}

func summarizeAction(e *domain.Expectation) string {
	switch {
	case e.ProxyTo != "":
		return "proxy " + e.ProxyTo
	case e.Response != nil && !e.Response.IsEmpty():
		return strconv.Itoa(e.Response.StatusCode)
	}
	return "-"
}

func summarizeScenario(e *domain.Expectation) string {
	if e.ScenarioName == "" {
		return "-"
	}
	s := e.ScenarioName
	if e.ScenarioStateIs != "" {
		s += " [" + e.ScenarioStateIs + "]"
	}
	if e.NewScenarioState != "" {
		s += " -> " + e.NewScenarioState
	}
	return s
}
