package domain

import (
	"maps"
	"net/http"
)

// Response is the mock response the server returns for a matched request.
//
// A Response is either a regular response or the explicit empty marker
// returned by EmptyResponse. The empty marker carries no status, body or
// headers and is used as the response placeholder of execution queries.
type Response struct {
	StatusCode  int
	Body        string
	Headers     map[string]string
	DelayMillis int

	empty bool
}

// DefaultResponse returns a 200 response with no body and no headers.
func DefaultResponse() *Response {
	return &Response{StatusCode: http.StatusOK}
}

// EmptyResponse returns the explicit empty response marker.
func EmptyResponse() *Response {
	return &Response{empty: true}
}

// IsEmpty reports whether r is the empty response marker.
func (r *Response) IsEmpty() bool {
	return r != nil && r.empty
}

// Clone returns a deep copy.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := *r
	if r.Headers != nil {
		out.Headers = maps.Clone(r.Headers)
	}
	return &out
}
