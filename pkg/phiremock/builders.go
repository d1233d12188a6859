package phiremock

import "github.com/getmockd/phiremock/pkg/builder"

// On starts an expectation for the given request conditions.
func On(conditions builder.ConditionsBuilder) builder.ExpectationBuilder {
	return builder.NewExpectation(conditions)
}

// OnRequest starts an expectation for requests with the given method and a
// URL equal to url.
func OnRequest(method, url string) builder.ExpectationBuilder {
	return builder.NewExpectation(builder.Request(method, url))
}
