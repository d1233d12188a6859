package cli

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/getmockd/phiremock/pkg/connection"
	"github.com/getmockd/phiremock/pkg/phiremock"
	"github.com/getmockd/phiremock/pkg/transport"
)

// stats is set when --stats wraps the transport.
var stats *transport.Instrumented

// newClient builds a client from the resolved configuration.
func newClient() (*phiremock.Client, error) {
	return newRateLimitedClient(0)
}

// newRateLimitedClient builds a client that sends at most perSecond
// requests per second. Zero means unlimited.
func newRateLimitedClient(perSecond float64) (*phiremock.Client, error) {
	ep, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	scheme, err := connection.NewScheme(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	var doer transport.Doer = transport.NewHTTP(
		transport.WithTimeout(cfg.Timeout),
		transport.WithInsecureSkipVerify(flagInsecure),
	)
	if flagStats {
		inst, err := transport.NewInstrumented(doer, prometheus.NewRegistry())
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
		stats = inst
		doer = inst
	}
	if perSecond > 0 {
		doer = transport.NewRateLimited(doer, perSecond, 1)
	}

	return phiremock.New(ep,
		phiremock.WithScheme(scheme),
		phiremock.WithTransport(doer),
		phiremock.WithLogger(logger),
	), nil
}

// printStats writes the request summary to stderr when --stats is set.
func printStats() {
	if stats == nil {
		return
	}
	s := stats.Summary()
	fmt.Fprintf(os.Stderr, "requests: %d, failed: %d", s.Total, s.Failed)
	for _, code := range s.Codes() {
		fmt.Fprintf(os.Stderr, ", %s: %d", code, s.ByCode[code])
	}
	fmt.Fprintln(os.Stderr)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %s must not be negative", d)
	}
	return d, nil
}

// formatError adds hints to the errors a user can act on.
func formatError(err error) string {
	var netErr net.Error
	var srvErr *phiremock.ServerError
	switch {
	case errors.As(err, &netErr):
		addr := "the configured server"
		if cfg != nil {
			addr = cfg.Scheme + "://" + net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
		}
		return fmt.Sprintf(`%s

Suggestions:
  • Check that Phiremock is running at %s
  • Verify the connection settings with: phiremockctl config`, err, addr)
	case errors.As(err, &srvErr):
		return fmt.Sprintf("server error (status %d) on %s %s: %v", srvErr.StatusCode, srvErr.Method, srvErr.Path, detailsOrBody(srvErr))
	}
	return err.Error()
}

func detailsOrBody(e *phiremock.ServerError) interface{} {
	if e.HasDetails() {
		return e.Details
	}
	if e.Body != "" {
		return e.Body
	}
	return "no details"
}
