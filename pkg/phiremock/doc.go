// Package phiremock is a control-plane client for a Phiremock mock server.
//
// A Client configures expectations, inspects recorded executions and drives
// scenario state through the server's /__phiremock REST API. Every method
// performs exactly one HTTP round trip and holds no state between calls:
//
//	endpoint, err := connection.NewEndpoint("localhost", 8086)
//	if err != nil {
//	    return err
//	}
//	client := phiremock.New(endpoint)
//
//	exp, err := phiremock.OnRequest(http.MethodGet, "/users").
//	    ThenRespond(200, `[{"id":1}]`).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	if err := client.CreateExpectation(ctx, exp); err != nil {
//	    return err
//	}
//
//	n, err := client.CountExecutions(ctx, builder.Request(http.MethodGet, "/users"))
//
// # Errors
//
// Server answers are classified uniformly. A 5xx status yields a *ServerError
// carrying the status, the "details" field of the JSON body when present, and
// the raw body. A 4xx status yields a *RequestError. Methods that return a
// payload accept only 200; any other status below 400 yields an
// *UnexpectedStatusError. Encoding problems are reported as a
// *SerializationError before anything is sent.
//
// # Transport
//
// Requests go through a Transport, which *http.Client satisfies. Timeouts,
// connection pooling, metrics and rate limiting belong to the Transport; see
// pkg/transport. The client itself never retries.
package phiremock
