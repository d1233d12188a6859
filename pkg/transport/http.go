package transport

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole round trip, body included.
const DefaultTimeout = 30 * time.Second

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Func adapts a function to the Doer interface.
type Func func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f Func) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

type httpConfig struct {
	timeout  time.Duration
	insecure bool
}

// HTTPOption configures NewHTTP.
type HTTPOption func(*httpConfig)

// WithTimeout sets the round-trip timeout. Zero disables it.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *httpConfig) {
		c.timeout = d
	}
}

// WithInsecureSkipVerify disables TLS certificate verification, for servers
// behind self-signed certificates.
func WithInsecureSkipVerify(skip bool) HTTPOption {
	return func(c *httpConfig) {
		c.insecure = skip
	}
}

// NewHTTP returns an *http.Client for talking to a Phiremock server.
func NewHTTP(opts ...HTTPOption) *http.Client {
	cfg := httpConfig{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := &http.Client{Timeout: cfg.timeout}
	if cfg.insecure {
		base := http.DefaultTransport.(*http.Transport).Clone()
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed test servers
		client.Transport = base
	}
	return client
}
