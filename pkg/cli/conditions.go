package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/cli/internal/flags"
	"github.com/getmockd/phiremock/pkg/domain"
)

// conditionFlags are the request-matching flags shared by expectation
// create and the executions commands.
type conditionFlags struct {
	method        string
	url           string
	urlMatches    string
	urlContains   string
	bodyEquals    string
	bodyContains  string
	bodyMatches   string
	bodyJSON      string
	headers       flags.Headers
	scenario      string
	scenarioState string
}

func (f *conditionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.method, "method", "", "HTTP method to match")
	fs.StringVar(&f.url, "url", "", "URL the request must be equal to")
	fs.StringVar(&f.urlMatches, "url-matches", "", "Regular expression the URL must match")
	fs.StringVar(&f.urlContains, "url-contains", "", "Text the URL must contain")
	fs.StringVar(&f.bodyEquals, "body-equals", "", "Body the request must be equal to")
	fs.StringVar(&f.bodyContains, "body-contains", "", "Text the request body must contain")
	fs.StringVar(&f.bodyMatches, "body-matches", "", "Regular expression the request body must match")
	fs.StringVar(&f.bodyJSON, "body-json", "", "JSON document the request body must be equivalent to")
	fs.Var(&f.headers, "header", "Header the request must carry, as 'Name: value' (repeatable)")
	fs.StringVar(&f.scenario, "scenario", "", "Scenario the expectation belongs to")
	fs.StringVar(&f.scenarioState, "scenario-state", "", "State the scenario must be in")
}

// build turns the flags into request conditions.
func (f *conditionFlags) build() (builder.ConditionsBuilder, error) {
	b := builder.NewConditions()
	if f.method != "" {
		b = b.AndMethod(strings.ToUpper(f.method))
	}

	url, err := pickOne("--url, --url-matches and --url-contains",
		choice{f.url, builder.IsEqualTo},
		choice{f.urlMatches, builder.Matches},
		choice{f.urlContains, builder.Contains},
	)
	if err != nil {
		return b, err
	}
	if url != nil {
		b = b.AndURL(*url)
	}

	body, err := pickOne("--body-equals, --body-contains, --body-matches and --body-json",
		choice{f.bodyEquals, builder.IsEqualTo},
		choice{f.bodyContains, builder.Contains},
		choice{f.bodyMatches, builder.Matches},
		choice{f.bodyJSON, builder.IsSameJSONObject},
	)
	if err != nil {
		return b, err
	}
	if body != nil {
		b = b.AndBody(*body)
	}

	for _, h := range f.headers {
		b = b.AndHeader(h.Name, builder.IsEqualTo(h.Value))
	}

	if f.scenarioState != "" && f.scenario == "" {
		return b, errors.New("--scenario-state requires --scenario")
	}
	if f.scenario != "" {
		b = b.AndScenarioState(f.scenario, f.scenarioState)
	}
	return b, nil
}

// hasRequestConditions reports whether any flag constrains the request itself.
func (f *conditionFlags) hasRequestConditions() bool {
	return f.method != "" || f.url != "" || f.urlMatches != "" || f.urlContains != "" ||
		f.bodyEquals != "" || f.bodyContains != "" || f.bodyMatches != "" || f.bodyJSON != "" ||
		len(f.headers) > 0
}

type choice struct {
	value string
	cond  func(string) domain.Condition
}

// pickOne returns the condition of the only non-empty choice.
func pickOne(names string, choices ...choice) (*domain.Condition, error) {
	var picked *domain.Condition
	for _, c := range choices {
		if c.value == "" {
			continue
		}
		if picked != nil {
			return nil, fmt.Errorf("%s are mutually exclusive", names)
		}
		cond := c.cond(c.value)
		picked = &cond
	}
	return picked, nil
}
