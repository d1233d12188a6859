package phiremock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getmockd/phiremock/pkg/connection"
	"github.com/getmockd/phiremock/pkg/convert"
	"github.com/getmockd/phiremock/pkg/domain"
	"github.com/getmockd/phiremock/pkg/logging"
	"github.com/getmockd/phiremock/pkg/transport"
)

// API paths of the Phiremock control plane.
const (
	ExpectationsPath = "/__phiremock/expectations"
	ExecutionsPath   = "/__phiremock/executions"
	ScenariosPath    = "/__phiremock/scenarios"
	ResetPath        = "/__phiremock/reset"
)

// Transport sends one HTTP request and returns its response.
// The standard *http.Client satisfies this interface.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Encoder converts an expectation into its JSON-compatible wire structure.
type Encoder interface {
	Encode(e *domain.Expectation) (map[string]interface{}, error)
}

// Decoder converts one element of the server's expectation list back into
// an expectation.
type Decoder interface {
	Decode(m map[string]interface{}) (*domain.Expectation, error)
}

// ExpectationSource produces the expectation used as an executions query.
// builder.ConditionsBuilder and builder.ExpectationBuilder satisfy it.
type ExpectationSource interface {
	Build() (*domain.Expectation, error)
}

// Client is a control-plane client for one Phiremock server.
// It is safe for concurrent use when its Transport is.
type Client struct {
	endpoint  connection.Endpoint
	scheme    connection.Scheme
	transport Transport
	encoder   Encoder
	decoder   Decoder
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the transport used to send requests.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithEncoder replaces the expectation encoder.
func WithEncoder(enc Encoder) Option {
	return func(c *Client) {
		if enc != nil {
			c.encoder = enc
		}
	}
}

// WithDecoder replaces the expectation decoder.
func WithDecoder(dec Decoder) Option {
	return func(c *Client) {
		if dec != nil {
			c.decoder = dec
		}
	}
}

// WithLogger sets the logger. Calls are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScheme sets the scheme of the control channel. The default is http.
func WithScheme(s connection.Scheme) Option {
	return func(c *Client) {
		if !s.IsZero() {
			c.scheme = s
		}
	}
}

// New creates a client for the server at endpoint.
func New(endpoint connection.Endpoint, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		scheme:   connection.HTTP(),
		encoder:  convert.ExpectationToMap{},
		decoder:  convert.MapToExpectation{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP()
	}
	c.logger = c.logger.With("component", "phiremock", "server", endpoint.Address())
	return c
}

// BaseURL returns scheme://host:port of the server.
func (c *Client) BaseURL() string {
	return c.scheme.String() + "://" + c.endpoint.Address()
}

// CreateExpectation registers an expectation on the server.
func (c *Client) CreateExpectation(ctx context.Context, e *domain.Expectation) error {
	body, err := c.marshalExpectation(e)
	if err != nil {
		return err
	}
	return c.exec(ctx, http.MethodPost, ExpectationsPath, body)
}

// CreateExpectationFromJSON registers an expectation given as raw JSON.
// The body is sent unmodified.
func (c *Client) CreateExpectationFromJSON(ctx context.Context, raw []byte) error {
	if raw == nil {
		raw = []byte{}
	}
	return c.exec(ctx, http.MethodPost, ExpectationsPath, raw)
}

// Reset restores the server's predefined expectations and resets scenarios
// and request counters.
func (c *Client) Reset(ctx context.Context) error {
	return c.exec(ctx, http.MethodPost, ResetPath, nil)
}

// ClearExpectations removes every configured expectation.
func (c *Client) ClearExpectations(ctx context.Context) error {
	return c.exec(ctx, http.MethodDelete, ExpectationsPath, nil)
}

// ListExpectations returns the expectations currently configured.
func (c *Client) ListExpectations(ctx context.Context) ([]*domain.Expectation, error) {
	return fetch(ctx, c, http.MethodGet, ExpectationsPath, nil, c.parseExpectations)
}

// CountExecutions returns how many received requests matched the query.
func (c *Client) CountExecutions(ctx context.Context, query ExpectationSource) (int, error) {
	body, err := c.marshalQuery(query, domain.DefaultResponse())
	if err != nil {
		return 0, err
	}
	return fetch(ctx, c, http.MethodPost, ExecutionsPath, body, parseCount)
}

// ListExecutions returns the requests that matched the query, as decoded
// JSON. The structure is whatever the server sends.
func (c *Client) ListExecutions(ctx context.Context, query ExpectationSource) (interface{}, error) {
	body, err := c.marshalQuery(query, domain.EmptyResponse())
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, http.MethodPut, ExecutionsPath, body, parseAny)
}

// SetScenarioState puts a scenario into the given state.
func (c *Client) SetScenarioState(ctx context.Context, info domain.ScenarioStateInfo) error {
	body, err := json.Marshal(info)
	if err != nil {
		return &SerializationError{Cause: err}
	}
	return c.exec(ctx, http.MethodPut, ScenariosPath, body)
}

// ResetScenarios moves every scenario back to its initial state.
func (c *Client) ResetScenarios(ctx context.Context) error {
	return c.exec(ctx, http.MethodDelete, ScenariosPath, nil)
}

// ResetRequestsCounter sets every execution counter back to zero.
func (c *Client) ResetRequestsCounter(ctx context.Context) error {
	return c.exec(ctx, http.MethodDelete, ExecutionsPath, nil)
}

func (c *Client) marshalExpectation(e *domain.Expectation) ([]byte, error) {
	m, err := c.encoder.Encode(e)
	if err != nil {
		return nil, &SerializationError{Cause: err}
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, &SerializationError{Cause: err}
	}
	return body, nil
}

// marshalQuery builds the executions query with its response replaced by resp.
// Only the request part of a query matters, so a proxy target is dropped.
func (c *Client) marshalQuery(query ExpectationSource, resp *domain.Response) ([]byte, error) {
	if query == nil {
		return nil, fmt.Errorf("%w: executions query is nil", domain.ErrInvalidExpectation)
	}
	e, err := query.Build()
	if err != nil {
		return nil, fmt.Errorf("building executions query: %w", err)
	}
	q := e.WithResponse(resp)
	q.ProxyTo = ""
	return c.marshalExpectation(q)
}

func (c *Client) parseExpectations(body []byte) ([]*domain.Expectation, error) {
	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("expectation list is null")
	}
	out := make([]*domain.Expectation, 0, len(items))
	for i, item := range items {
		e, err := c.decoder.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("expectation %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseCount(body []byte) (int, error) {
	var result struct {
		Count *int `json:"count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	if result.Count == nil {
		return 0, errors.New("missing count field")
	}
	return *result.Count, nil
}

func parseAny(body []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}
