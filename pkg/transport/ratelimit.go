package transport

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimited spaces out requests with a token bucket. Callers block until a
// token is available or the request context ends.
type RateLimited struct {
	next    Doer
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond requests per second with the given burst.
// A non-positive perSecond disables limiting.
func NewRateLimited(next Doer, perSecond float64, burst int) *RateLimited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Do waits for a token and sends req.
func (r *RateLimited) Do(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return r.next.Do(req)
}
