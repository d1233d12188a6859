// Package expectationfile loads Phiremock expectation definitions from disk.
//
// Files are selected with glob patterns (including ** for recursive matching)
// and may be written as JSON, JSON with comments (.jsonc) or YAML. A file
// holding an array contributes one File per element. Every File carries the
// expectation as plain JSON, ready to be sent with
// phiremock.Client.CreateExpectationFromJSON or checked with Validate.
package expectationfile
