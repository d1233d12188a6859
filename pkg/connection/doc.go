// Package connection holds the value types that locate a Phiremock server:
// the transport scheme, the host and the port.
//
// All constructors validate their input and fail with an error wrapping
// ErrInvalidInput. A value that was constructed successfully is always valid
// and never changes afterwards.
package connection
