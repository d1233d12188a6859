package phiremock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// response is a fully read server answer.
type response struct {
	method     string
	path       string
	statusCode int
	body       []byte
}

type outcomeKind int

const (
	outcomeVoid outcomeKind = iota
	outcomePayload
	outcomeError
)

// outcome is the classification of a response.
type outcome struct {
	kind outcomeKind
	body []byte
	err  error
}

// classify applies the status rules shared by every call. When wantPayload
// is set, only 200 is a success and it carries the body.
func classify(res *response, wantPayload bool) outcome {
	if wantPayload && res.statusCode == http.StatusOK {
		return outcome{kind: outcomePayload, body: res.body}
	}
	switch {
	case res.statusCode >= 500:
		return outcome{kind: outcomeError, err: &ServerError{
			Method:     res.method,
			Path:       res.path,
			StatusCode: res.statusCode,
			Details:    extractDetails(res.body),
			Body:       string(res.body),
		}}
	case res.statusCode >= 400:
		return outcome{kind: outcomeError, err: &RequestError{
			Method:     res.method,
			Path:       res.path,
			StatusCode: res.statusCode,
		}}
	case wantPayload:
		return outcome{kind: outcomeError, err: &UnexpectedStatusError{
			Method:     res.method,
			Path:       res.path,
			StatusCode: res.statusCode,
		}}
	default:
		return outcome{kind: outcomeVoid}
	}
}

// extractDetails returns the "details" field of a JSON object body, or nil.
func extractDetails(body []byte) interface{} {
	var obj map[string]interface{}
	if json.Unmarshal(body, &obj) != nil {
		return nil
	}
	return obj["details"]
}

// exec performs a call whose success carries no payload.
func (c *Client) exec(ctx context.Context, method, path string, body []byte) error {
	res, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	return classify(res, false).err
}

// fetch performs a call that needs a 200 payload and parses it.
func fetch[T any](ctx context.Context, c *Client, method, path string, body []byte, parse func([]byte) (T, error)) (T, error) {
	var zero T
	res, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	out := classify(res, true)
	if out.kind == outcomeError {
		return zero, out.err
	}
	v, err := parse(out.body)
	if err != nil {
		return zero, fmt.Errorf("%w from %s %s: %v", ErrInvalidResponse, method, path, err)
	}
	return v, nil
}

func (c *Client) endpointURL(path string) string {
	u := url.URL{
		Scheme: c.scheme.String(),
		Host:   c.endpoint.Address(),
		Path:   path,
	}
	return u.String()
}

// send issues one request and reads the whole response. A nil body sends no
// body and no Content-Type header.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.transport.Do(req)
	if err != nil {
		c.logger.Debug("phiremock call failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("sending %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	c.logger.Debug("phiremock call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return &response{method: method, path: path, statusCode: resp.StatusCode, body: data}, nil
}
