package phiremock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/connection"
	"github.com/getmockd/phiremock/pkg/domain"
	"github.com/getmockd/phiremock/pkg/logging"
)

// --- Helpers ---

func endpointOf(t testing.TB, rawURL string) connection.Endpoint {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split %q: %v", u.Host, err)
	}
	port, _ := strconv.Atoi(portStr)
	ep, err := connection.NewEndpoint(host, port)
	if err != nil {
		t.Fatalf("endpoint: %v", err)
	}
	return ep
}

// mockServer creates a test server and a client pointed at it.
func mockServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, New(endpointOf(t, ts.URL), WithTransport(ts.Client()))
}

func jsonHandler(t *testing.T, statusCode int, body interface{}) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if body != nil {
			if err := json.NewEncoder(w).Encode(body); err != nil {
				t.Errorf("failed to encode response: %v", err)
			}
		}
	}
}

func localEndpoint(t *testing.T) connection.Endpoint {
	t.Helper()
	ep, err := connection.NewEndpoint("localhost", 8086)
	if err != nil {
		t.Fatal(err)
	}
	return ep
}

// --- New / Options Tests ---

func TestNew_Defaults(t *testing.T) {
	c := New(localEndpoint(t))
	if got := c.BaseURL(); got != "http://localhost:8086" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://localhost:8086")
	}
	if _, ok := c.transport.(*http.Client); !ok {
		t.Errorf("default transport = %T, want *http.Client", c.transport)
	}
}

func TestNew_WithScheme(t *testing.T) {
	c := New(localEndpoint(t), WithScheme(connection.HTTPS()))
	if got := c.BaseURL(); got != "https://localhost:8086" {
		t.Errorf("BaseURL() = %q, want %q", got, "https://localhost:8086")
	}

	c = New(localEndpoint(t), WithScheme(connection.Scheme{}))
	if got := c.BaseURL(); got != "http://localhost:8086" {
		t.Errorf("zero scheme should keep the default, got %q", got)
	}
}

func TestNew_NilOptionsKeepDefaults(t *testing.T) {
	c := New(localEndpoint(t), WithTransport(nil), WithEncoder(nil), WithDecoder(nil), WithLogger(nil))
	if c.transport == nil || c.encoder == nil || c.decoder == nil || c.logger == nil {
		t.Fatal("nil options must not clear defaults")
	}
}

// --- Operation Tests (httptest) ---

func TestCreateExpectation(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]interface{}
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	e, err := OnRequest("GET", "/users").ThenRespond(200, `{"id":1}`).Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.CreateExpectation(context.Background(), e); err != nil {
		t.Fatalf("CreateExpectation() error = %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != ExpectationsPath {
		t.Errorf("request = %s %s, want POST %s", gotMethod, gotPath, ExpectationsPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	req, _ := gotBody["request"].(map[string]interface{})
	if req["method"] != "GET" {
		t.Errorf("request.method = %v, want GET", req["method"])
	}
	resp, _ := gotBody["response"].(map[string]interface{})
	if resp["statusCode"] != float64(200) || resp["body"] != `{"id":1}` {
		t.Errorf("response = %v", resp)
	}
}

func TestListExpectations(t *testing.T) {
	_, c := mockServer(t, jsonHandler(t, http.StatusOK, []interface{}{
		map[string]interface{}{
			"request":  map[string]interface{}{"method": "GET", "url": map[string]interface{}{"isEqualTo": "/a"}},
			"response": map[string]interface{}{"statusCode": 204},
		},
	}))

	list, err := c.ListExpectations(context.Background())
	if err != nil {
		t.Fatalf("ListExpectations() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].Request.Method != "GET" || list[0].Request.URL.Value != "/a" {
		t.Errorf("request = %+v", list[0].Request)
	}
	if list[0].Response.StatusCode != 204 {
		t.Errorf("status = %d, want 204", list[0].Response.StatusCode)
	}
}

func TestListExpectations_Empty(t *testing.T) {
	_, c := mockServer(t, jsonHandler(t, http.StatusOK, []interface{}{}))

	list, err := c.ListExpectations(context.Background())
	if err != nil {
		t.Fatalf("ListExpectations() error = %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty non-nil slice", list)
	}
}

func TestCountExecutions(t *testing.T) {
	var gotBody map[string]interface{}
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != ExecutionsPath {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"count": 7}`)
	})

	n, err := c.CountExecutions(context.Background(), builder.Request("GET", "/users"))
	if err != nil {
		t.Fatalf("CountExecutions() error = %v", err)
	}
	if n != 7 {
		t.Errorf("count = %d, want 7", n)
	}
	resp, ok := gotBody["response"].(map[string]interface{})
	if !ok || resp["statusCode"] != float64(200) {
		t.Errorf("query response = %v, want default response", gotBody["response"])
	}
}

func TestCountExecutions_NotFound(t *testing.T) {
	_, c := mockServer(t, jsonHandler(t, http.StatusNotFound, nil))

	_, err := c.CountExecutions(context.Background(), builder.Request("GET", "/x"))
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", reqErr.StatusCode)
	}
	if !errors.Is(err, ErrRemoteRequest) {
		t.Error("errors.Is(err, ErrRemoteRequest) = false")
	}
}

func TestCountExecutions_ServerErrorDetails(t *testing.T) {
	_, c := mockServer(t, jsonHandler(t, http.StatusInternalServerError, map[string]string{"details": "boom"}))

	_, err := c.CountExecutions(context.Background(), builder.Request("GET", "/x"))
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("error = %v, want *ServerError", err)
	}
	if srvErr.Details != "boom" {
		t.Errorf("Details = %v, want boom", srvErr.Details)
	}
	if !errors.Is(err, ErrRemoteServer) {
		t.Error("errors.Is(err, ErrRemoteServer) = false")
	}
}

func TestListExecutions(t *testing.T) {
	var gotBody map[string]interface{}
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != ExecutionsPath {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `[{"method":"GET","url":"http://localhost/x"}]`)
	})

	got, err := c.ListExecutions(context.Background(), builder.Request("GET", "/x"))
	if err != nil {
		t.Fatalf("ListExecutions() error = %v", err)
	}
	items, ok := got.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("result = %#v, want one execution", got)
	}
	if v, present := gotBody["response"]; !present || v != nil {
		t.Errorf("query response = %v (present %v), want explicit null", v, present)
	}
}

func TestSetScenarioState(t *testing.T) {
	var gotBody string
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != ScenariosPath {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
	})

	info, err := domain.NewScenarioStateInfo("checkout", "paid")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetScenarioState(context.Background(), info); err != nil {
		t.Fatalf("SetScenarioState() error = %v", err)
	}
	want := `{"scenarioName":"checkout","scenarioState":"paid"}`
	if gotBody != want {
		t.Errorf("body = %s, want %s", gotBody, want)
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ep := endpointOf(t, ts.URL)
	ts.Close()

	c := New(ep)
	if err := c.Reset(context.Background()); err == nil {
		t.Fatal("expected a transport error against a closed server")
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON, Output: &buf})

	ts := httptest.NewServer(jsonHandler(t, http.StatusCreated, nil))
	defer ts.Close()
	c := New(endpointOf(t, ts.URL), WithTransport(ts.Client()), WithLogger(logger))

	if err := c.CreateExpectationFromJSON(context.Background(), []byte(`{"secret":"do-not-log"}`)); err != nil {
		t.Fatalf("CreateExpectationFromJSON: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not one JSON line: %v\n%s", err, buf.String())
	}
	if entry["method"] != http.MethodPost || entry["path"] != ExpectationsPath {
		t.Errorf("logged method/path = %v %v", entry["method"], entry["path"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("logged status = %v, want 201", entry["status"])
	}
	if _, ok := entry["duration"]; !ok {
		t.Error("duration not logged")
	}
	if strings.Contains(buf.String(), "do-not-log") {
		t.Error("request body leaked into the log")
	}
}
