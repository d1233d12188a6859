// Package builder provides fluent constructors for Phiremock expectations.
//
// Builders are values. Every method returns a new builder and leaves the
// receiver untouched, so a partially configured builder can be reused as a
// template:
//
//	base := builder.Request(http.MethodGet, "/users").
//	    AndHeader("Accept", builder.Contains("json"))
//	ok := builder.NewExpectation(base).ThenRespond(200, `[]`)
//	slow := builder.NewExpectation(base).Then(builder.Respond(200).AndDelayInMillis(500))
//
// Build validates the accumulated values and returns a freshly allocated
// entity that shares no memory with the builder.
package builder
