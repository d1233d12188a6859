package builder

import (
	"fmt"

	"github.com/getmockd/phiremock/pkg/domain"
)

// ExpectationBuilder combines request conditions with what the server should
// do when they match.
type ExpectationBuilder struct {
	conditions       ConditionsBuilder
	response         *ResponseBuilder
	proxyTo          string
	newScenarioState string
	priority         int
}

// NewExpectation starts an expectation for the given conditions.
func NewExpectation(conditions ConditionsBuilder) ExpectationBuilder {
	return ExpectationBuilder{conditions: conditions}
}

// Then sets the mock response.
func (b ExpectationBuilder) Then(r ResponseBuilder) ExpectationBuilder {
	b.response = &r
	return b
}

// ThenRespond is shorthand for Then(Respond(status).AndBody(body)).
func (b ExpectationBuilder) ThenRespond(status int, body string) ExpectationBuilder {
	return b.Then(Respond(status).AndBody(body))
}

// ThenProxyTo forwards matching requests to url.
func (b ExpectationBuilder) ThenProxyTo(url string) ExpectationBuilder {
	b.proxyTo = url
	return b
}

// SetNewScenarioState moves the scenario named in the conditions to state
// once the expectation matches.
func (b ExpectationBuilder) SetNewScenarioState(state string) ExpectationBuilder {
	b.newScenarioState = state
	return b
}

// WithPriority sets the expectation priority.
func (b ExpectationBuilder) WithPriority(priority int) ExpectationBuilder {
	b.priority = priority
	return b
}

// Build validates and returns the expectation.
func (b ExpectationBuilder) Build() (*domain.Expectation, error) {
	e, err := b.conditions.Build()
	if err != nil {
		return nil, err
	}

	switch {
	case b.response == nil && b.proxyTo == "":
		return nil, fmt.Errorf("%w: a response or a proxy target is required", domain.ErrInvalidExpectation)
	case b.response != nil && b.proxyTo != "":
		return nil, fmt.Errorf("%w: response and proxy target are mutually exclusive", domain.ErrInvalidExpectation)
	}

	if b.response != nil {
		resp, err := b.response.Build()
		if err != nil {
			return nil, err
		}
		e.Response = resp
	}
	e.ProxyTo = b.proxyTo
	e.NewScenarioState = b.newScenarioState
	e.Priority = b.priority

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
