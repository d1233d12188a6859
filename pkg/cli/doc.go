// Package cli implements phiremockctl, a command-line client for the
// control plane of a Phiremock server.
//
// Commands:
//   - expectation create: Register an expectation from flags or an interactive form
//   - expectation import: Register expectations from JSON, JSONC or YAML files
//   - expectation validate: Check expectation files offline
//   - expectation list: Show the configured expectations
//   - expectation clear: Remove every expectation
//   - executions count|list|reset: Inspect and reset the request counters
//   - scenario set|reset: Drive scenario states
//   - reset: Restore the server to its initial state
//   - config: Display the effective configuration and where it came from
//   - version: Show phiremockctl version
//
// Connection settings come from flags, PHIREMOCK_* environment variables,
// .phiremockrc.yaml in the current directory or the global config file.
//
// Usage:
//
//	phiremockctl expectation create --method GET --url /users --status 200 --response-body '[]'
//	phiremockctl expectation import 'mocks/**/*.yaml' --rate 20
//	phiremockctl executions count --method GET --url /users
//	phiremockctl executions list --jsonpath '$[*].url'
//	phiremockctl scenario set checkout paid
//	phiremockctl reset
package cli
