package domain

import (
	"errors"
	"fmt"
	"maps"
)

// ErrInvalidExpectation is returned when an expectation or its parts fail validation.
var ErrInvalidExpectation = errors.New("invalid expectation")

// Matcher names a comparison the server applies to a request field.
type Matcher string

// Matchers understood by Phiremock.
const (
	MatcherIsEqualTo        Matcher = "isEqualTo"
	MatcherIsSameString     Matcher = "isSameString"
	MatcherMatches          Matcher = "matches"
	MatcherContains         Matcher = "contains"
	MatcherIsSameJSONObject Matcher = "isSameJsonObject"
)

// Valid reports whether m is a known matcher.
func (m Matcher) Valid() bool {
	switch m {
	case MatcherIsEqualTo, MatcherIsSameString, MatcherMatches, MatcherContains, MatcherIsSameJSONObject:
		return true
	}
	return false
}

// Condition pairs a matcher with the value it compares against.
type Condition struct {
	Matcher Matcher
	Value   string
}

// RequestConditions describes the requests an expectation applies to.
type RequestConditions struct {
	// Method is compared case-insensitively by the server. Empty matches any method.
	Method  string
	URL     *Condition
	Body    *Condition
	Headers map[string]Condition
}

// IsEmpty reports whether no condition at all is set.
func (r *RequestConditions) IsEmpty() bool {
	return r == nil || (r.Method == "" && r.URL == nil && r.Body == nil && len(r.Headers) == 0)
}

// Clone returns a deep copy.
func (r *RequestConditions) Clone() *RequestConditions {
	if r == nil {
		return nil
	}
	out := &RequestConditions{Method: r.Method}
	if r.URL != nil {
		u := *r.URL
		out.URL = &u
	}
	if r.Body != nil {
		b := *r.Body
		out.Body = &b
	}
	if r.Headers != nil {
		out.Headers = maps.Clone(r.Headers)
	}
	return out
}

// Expectation tells the server which requests to match and how to answer them.
type Expectation struct {
	Request  *RequestConditions
	Response *Response

	// ProxyTo forwards matched requests to this URL instead of answering with Response.
	ProxyTo string

	ScenarioName     string
	ScenarioStateIs  string
	NewScenarioState string

	// Priority orders overlapping expectations; higher wins.
	Priority int
}

// WithResponse returns a copy of e whose response is r. e itself is not modified.
func (e *Expectation) WithResponse(r *Response) *Expectation {
	out := e.Clone()
	out.Response = r.Clone()
	return out
}

// Clone returns a deep copy.
func (e *Expectation) Clone() *Expectation {
	if e == nil {
		return nil
	}
	out := *e
	out.Request = e.Request.Clone()
	out.Response = e.Response.Clone()
	return &out
}

// Validate checks the invariants shared by every expectation sent to the server.
func (e *Expectation) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: expectation is nil", ErrInvalidExpectation)
	}
	if e.Request.IsEmpty() {
		return fmt.Errorf("%w: at least one request condition is required", ErrInvalidExpectation)
	}
	for _, c := range e.conditions() {
		if !c.Matcher.Valid() {
			return fmt.Errorf("%w: unknown matcher %q", ErrInvalidExpectation, c.Matcher)
		}
	}
	for name := range e.Request.Headers {
		if name == "" {
			return fmt.Errorf("%w: header name cannot be empty", ErrInvalidExpectation)
		}
	}
	if e.ScenarioName == "" && (e.ScenarioStateIs != "" || e.NewScenarioState != "") {
		return fmt.Errorf("%w: scenario state requires a scenario name", ErrInvalidExpectation)
	}
	if e.Priority < 0 {
		return fmt.Errorf("%w: priority %d must not be negative", ErrInvalidExpectation, e.Priority)
	}
	return nil
}

func (e *Expectation) conditions() []Condition {
	var out []Condition
	if e.Request.URL != nil {
		out = append(out, *e.Request.URL)
	}
	if e.Request.Body != nil {
		out = append(out, *e.Request.Body)
	}
	for _, c := range e.Request.Headers {
		out = append(out, c)
	}
	return out
}
