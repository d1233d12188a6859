package phiremocktest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	controlPrefix    = "/__phiremock/"
	expectationsPath = "/__phiremock/expectations"
	executionsPath   = "/__phiremock/executions"
	scenariosPath    = "/__phiremock/scenarios"
	resetPath        = "/__phiremock/reset"
)

var (
	okBody        = []byte(`{"result":"OK","details":[]}`)
	invalidJSON   = []byte(`{"result":"ERROR","details":["invalid json"]}`)
	notFoundReply = reply{status: http.StatusNotFound}
)

// echoReply must be called with t.mu held. The current request is already
// recorded as the last element of t.requests.
func (t *Transport) echoReply(method, path string, body []byte) reply {
	switch path {
	case expectationsPath:
		return t.echoExpectations(method, body)
	case executionsPath:
		return t.echoExecutions(method, body)
	case scenariosPath:
		return t.echoScenarios(method, body)
	case resetPath:
		if method != http.MethodPost {
			return reply{status: http.StatusMethodNotAllowed}
		}
		t.stored = nil
		t.scenarios = make(map[string]string)
		t.counterFrom = len(t.requests)
		return reply{status: http.StatusOK, body: okBody}
	}
	return notFoundReply
}

func (t *Transport) echoExpectations(method string, body []byte) reply {
	switch method {
	case http.MethodPost:
		if !json.Valid(body) {
			return reply{status: http.StatusBadRequest, body: invalidJSON}
		}
		t.stored = append(t.stored, json.RawMessage(bytes.Clone(body)))
		return reply{status: http.StatusCreated, body: okBody}
	case http.MethodGet:
		list := t.stored
		if list == nil {
			list = []json.RawMessage{}
		}
		data, _ := json.Marshal(list)
		return reply{status: http.StatusOK, body: data}
	case http.MethodDelete:
		t.stored = nil
		return reply{status: http.StatusOK, body: okBody}
	}
	return reply{status: http.StatusMethodNotAllowed}
}

// execution is the listing shape of one received request.
type execution struct {
	Method  string              `json:"method"`
	URL     string              `json:"url"`
	Headers map[string][]string `json:"headers,omitempty"`
	Body    string              `json:"body,omitempty"`
}

func (t *Transport) echoExecutions(method string, body []byte) reply {
	if method == http.MethodDelete {
		t.counterFrom = len(t.requests)
		return reply{status: http.StatusOK, body: okBody}
	}
	if method != http.MethodPost && method != http.MethodPut {
		return reply{status: http.StatusMethodNotAllowed}
	}

	var query struct {
		Request struct {
			Method string            `json:"method"`
			URL    map[string]string `json:"url"`
		} `json:"request"`
	}
	if err := json.Unmarshal(body, &query); err != nil {
		return reply{status: http.StatusBadRequest, body: invalidJSON}
	}

	matched := []execution{}
	for _, r := range t.requests[t.counterFrom:] {
		if strings.HasPrefix(r.Path, controlPrefix) {
			continue
		}
		if query.Request.Method != "" && !strings.EqualFold(query.Request.Method, r.Method) {
			continue
		}
		if want, ok := query.Request.URL["isEqualTo"]; ok && want != r.Path {
			continue
		}
		if want, ok := query.Request.URL["contains"]; ok && !strings.Contains(r.Path, want) {
			continue
		}
		matched = append(matched, execution{Method: r.Method, URL: r.URL, Headers: r.Header, Body: string(r.Body)})
	}

	var data []byte
	if method == http.MethodPost {
		data, _ = json.Marshal(map[string]int{"count": len(matched)})
	} else {
		data, _ = json.Marshal(matched)
	}
	return reply{status: http.StatusOK, body: data}
}

func (t *Transport) echoScenarios(method string, body []byte) reply {
	switch method {
	case http.MethodPut:
		var info struct {
			Name  string `json:"scenarioName"`
			State string `json:"scenarioState"`
		}
		if err := json.Unmarshal(body, &info); err != nil || info.Name == "" || info.State == "" {
			return reply{status: http.StatusBadRequest, body: invalidJSON}
		}
		t.scenarios[info.Name] = info.State
		return reply{status: http.StatusOK, body: okBody}
	case http.MethodDelete:
		t.scenarios = make(map[string]string)
		return reply{status: http.StatusOK, body: okBody}
	}
	return reply{status: http.StatusMethodNotAllowed}
}

// ScenarioState returns the state last set for a scenario.
func (t *Transport) ScenarioState(name string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.scenarios[name]
	return state, ok
}

// ServeHTTP exposes the Transport as an HTTP handler, so it can back an
// httptest.Server for code that cannot take a custom Transport.
func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := t.Do(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	_, _ = w.Write(buf.Bytes())
}
