package builder

import (
	"fmt"
	"maps"

	"github.com/getmockd/phiremock/pkg/domain"
)

// ResponseBuilder accumulates a mock response.
type ResponseBuilder struct {
	status  int
	body    string
	headers map[string]string
	delay   int
}

// Respond starts a response with the given status code.
func Respond(status int) ResponseBuilder {
	return ResponseBuilder{status: status}
}

// AndBody sets the response body.
func (b ResponseBuilder) AndBody(body string) ResponseBuilder {
	b.body = body
	return b
}

// AndHeader adds a response header.
func (b ResponseBuilder) AndHeader(name, value string) ResponseBuilder {
	headers := make(map[string]string, len(b.headers)+1)
	maps.Copy(headers, b.headers)
	headers[name] = value
	b.headers = headers
	return b
}

// AndDelayInMillis delays the response by ms milliseconds.
func (b ResponseBuilder) AndDelayInMillis(ms int) ResponseBuilder {
	b.delay = ms
	return b
}

// Build validates and returns the response.
func (b ResponseBuilder) Build() (*domain.Response, error) {
	if b.status < 100 || b.status > 599 {
		return nil, fmt.Errorf("%w: status code %d is out of range", domain.ErrInvalidExpectation, b.status)
	}
	if b.delay < 0 {
		return nil, fmt.Errorf("%w: delay %dms must not be negative", domain.ErrInvalidExpectation, b.delay)
	}
	for name := range b.headers {
		if name == "" {
			return nil, fmt.Errorf("%w: response header name cannot be empty", domain.ErrInvalidExpectation)
		}
	}
	r := &domain.Response{
		StatusCode:  b.status,
		Body:        b.body,
		DelayMillis: b.delay,
	}
	if len(b.headers) > 0 {
		r.Headers = maps.Clone(b.headers)
	}
	return r, nil
}
