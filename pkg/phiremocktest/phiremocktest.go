// Package phiremocktest provides an in-memory Transport for testing code
// that uses the phiremock client without a running server.
//
//	tr := phiremocktest.New().Reply(200, `{"count": 3}`)
//	client := phiremock.New(endpoint, phiremock.WithTransport(tr))
//	n, _ := client.CountExecutions(ctx, builder.Request("GET", "/users"))
//	req, _ := tr.LastRequest()
package phiremocktest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Request is a recorded outgoing request.
type Request struct {
	Method string
	URL    string
	Path   string
	Header http.Header
	// Body is nil when the request had no body.
	Body []byte
}

type reply struct {
	status int
	body   []byte
	err    error
}

// Transport records requests and answers them from a queue of scripted
// replies, falling back to 200 with an empty body.
type Transport struct {
	mu       sync.Mutex
	requests []Request
	queue    []reply
	fallback reply

	echo      bool
	stored    []json.RawMessage
	scenarios map[string]string
	// counterFrom is the index in requests where execution counting starts.
	counterFrom int
}

// New returns a Transport that answers 200 with an empty body unless replies
// are queued.
func New() *Transport {
	return &Transport{fallback: reply{status: http.StatusOK}}
}

// NewEcho returns a Transport that behaves like a minimal Phiremock control
// plane. Expectations are stored as posted and listed back verbatim,
// executions are counted over the requests it received outside
// /__phiremock/, and scenario states are kept in memory. It does not serve
// mocked responses. Queued replies still take precedence.
func NewEcho() *Transport {
	t := New()
	t.echo = true
	t.scenarios = make(map[string]string)
	return t
}

// Reply queues a response. Queued responses are used in order, one per request.
func (t *Transport) Reply(status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, reply{status: status, body: []byte(body)})
	return t
}

// ReplyJSON queues a response whose body is v encoded as JSON.
func (t *Transport) ReplyJSON(status int, v interface{}) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		panic("phiremocktest: cannot encode reply: " + err.Error())
	}
	return t.Reply(status, string(data))
}

// Fail queues a transport-level error.
func (t *Transport) Fail(err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, reply{err: err})
	return t
}

// Default sets the response used when the queue is empty.
func (t *Transport) Default(status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = reply{status: status, body: []byte(body)}
	return t
}

// Do records req and returns the next scripted response.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
		body = data
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, Request{
		Method: req.Method,
		URL:    req.URL.String(),
		Path:   req.URL.Path,
		Header: req.Header.Clone(),
		Body:   body,
	})

	var r reply
	switch {
	case len(t.queue) > 0:
		r = t.queue[0]
		t.queue = t.queue[1:]
	case t.echo && strings.HasPrefix(req.URL.Path, controlPrefix):
		r = t.echoReply(req.Method, req.URL.Path, body)
	default:
		r = t.fallback
	}

	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Status:     http.StatusText(r.status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(r.body)),
		Request:    req,
	}, nil
}

// Requests returns a copy of the recorded requests in order.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// Calls returns the number of recorded requests.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// LastRequest returns the most recent request.
func (t *Transport) LastRequest() (Request, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return Request{}, false
	}
	return t.requests[len(t.requests)-1], true
}
