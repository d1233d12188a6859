package convert

import (
	"fmt"

	"github.com/getmockd/phiremock/pkg/domain"
)

// ExpectationToMap encodes expectations into their wire structure.
type ExpectationToMap struct{}

// Encode converts e into a map ready for encoding/json.
func (ExpectationToMap) Encode(e *domain.Expectation) (map[string]interface{}, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: expectation is nil", domain.ErrInvalidExpectation)
	}

	out := map[string]interface{}{}
	putString(out, keyScenarioName, e.ScenarioName)
	putString(out, keyScenarioStateIs, e.ScenarioStateIs)
	putString(out, keyNewScenarioState, e.NewScenarioState)
	putString(out, keyProxyTo, e.ProxyTo)
	if e.Priority != 0 {
		out[keyPriority] = e.Priority
	}

	if e.Request != nil {
		out[keyRequest] = encodeRequest(e.Request)
	}
	if e.Response != nil {
		if e.Response.IsEmpty() {
			out[keyResponse] = nil
		} else {
			out[keyResponse] = encodeResponse(e.Response)
		}
	}
	return out, nil
}

func encodeRequest(r *domain.RequestConditions) map[string]interface{} {
	out := map[string]interface{}{}
	putString(out, keyMethod, r.Method)
	if r.URL != nil {
		out[keyURL] = encodeCondition(*r.URL)
	}
	if r.Body != nil {
		out[keyBody] = encodeCondition(*r.Body)
	}
	if len(r.Headers) > 0 {
		headers := make(map[string]interface{}, len(r.Headers))
		for name, c := range r.Headers {
			headers[name] = encodeCondition(c)
		}
		out[keyHeaders] = headers
	}
	return out
}

func encodeCondition(c domain.Condition) map[string]interface{} {
	return map[string]interface{}{string(c.Matcher): c.Value}
}

func encodeResponse(r *domain.Response) map[string]interface{} {
	out := map[string]interface{}{
		keyStatusCode: r.StatusCode,
	}
	putString(out, keyBody, r.Body)
	if len(r.Headers) > 0 {
		headers := make(map[string]interface{}, len(r.Headers))
		for k, v := range r.Headers {
			headers[k] = v
		}
		out[keyHeaders] = headers
	}
	if r.DelayMillis != 0 {
		out[keyDelayMillis] = r.DelayMillis
	}
	return out
}

func putString(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}
