// Package transport provides the HTTP transports used by the phiremock client.
//
// NewHTTP returns the default *http.Client. Instrumented and RateLimited are
// decorators around any Doer and can be stacked:
//
//	reg := prometheus.NewRegistry()
//	inst, err := transport.NewInstrumented(transport.NewHTTP(), reg)
//	if err != nil {
//	    return err
//	}
//	client := phiremock.New(endpoint, phiremock.WithTransport(transport.NewRateLimited(inst, 20, 5)))
package transport
