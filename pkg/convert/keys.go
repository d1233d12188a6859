package convert

// Wire field names of the Phiremock v1 expectation format.
const (
	keyScenarioName     = "scenarioName"
	keyScenarioStateIs  = "scenarioStateIs"
	keyNewScenarioState = "newScenarioState"
	keyRequest          = "request"
	keyResponse         = "response"
	keyProxyTo          = "proxyTo"
	keyPriority         = "priority"

	keyMethod  = "method"
	keyURL     = "url"
	keyBody    = "body"
	keyHeaders = "headers"

	keyStatusCode  = "statusCode"
	keyDelayMillis = "delayMillis"
)
