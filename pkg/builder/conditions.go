package builder

import (
	"maps"

	"github.com/getmockd/phiremock/pkg/domain"
)

// ConditionsBuilder accumulates the request conditions of an expectation.
type ConditionsBuilder struct {
	method        string
	url           *domain.Condition
	body          *domain.Condition
	headers       map[string]domain.Condition
	scenarioName  string
	scenarioState string
}

// NewConditions returns a builder with no conditions.
func NewConditions() ConditionsBuilder {
	return ConditionsBuilder{}
}

// Request returns a builder matching method and, when url is non-empty, a URL
// equal to url.
func Request(method, url string) ConditionsBuilder {
	b := ConditionsBuilder{method: method}
	if url != "" {
		b = b.AndURL(IsEqualTo(url))
	}
	return b
}

// AndMethod sets the HTTP method condition.
func (b ConditionsBuilder) AndMethod(method string) ConditionsBuilder {
	b.method = method
	return b
}

// AndURL sets the URL condition, replacing any previous one.
func (b ConditionsBuilder) AndURL(c domain.Condition) ConditionsBuilder {
	b.url = &c
	return b
}

// AndBody sets the body condition, replacing any previous one.
func (b ConditionsBuilder) AndBody(c domain.Condition) ConditionsBuilder {
	b.body = &c
	return b
}

// AndHeader adds a condition on the named header.
func (b ConditionsBuilder) AndHeader(name string, c domain.Condition) ConditionsBuilder {
	headers := make(map[string]domain.Condition, len(b.headers)+1)
	maps.Copy(headers, b.headers)
	headers[name] = c
	b.headers = headers
	return b
}

// AndScenarioState restricts the expectation to scenario name being in state.
func (b ConditionsBuilder) AndScenarioState(name, state string) ConditionsBuilder {
	b.scenarioName = name
	b.scenarioState = state
	return b
}

// Build returns an expectation holding only the accumulated conditions.
// Execution queries use it as is; ExpectationBuilder adds the response part.
func (b ConditionsBuilder) Build() (*domain.Expectation, error) {
	e := b.expectation()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (b ConditionsBuilder) expectation() *domain.Expectation {
	req := &domain.RequestConditions{Method: b.method}
	if b.url != nil {
		u := *b.url
		req.URL = &u
	}
	if b.body != nil {
		body := *b.body
		req.Body = &body
	}
	if len(b.headers) > 0 {
		req.Headers = maps.Clone(b.headers)
	}
	return &domain.Expectation{
		Request:         req,
		ScenarioName:    b.scenarioName,
		ScenarioStateIs: b.scenarioState,
	}
}
