package connection

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidInput is returned by the constructors in this package when the
// supplied value is malformed.
var ErrInvalidInput = errors.New("invalid input")

// Scheme values accepted by NewScheme.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

var schemePattern = regexp.MustCompile(`^https?$`)

// Scheme is the transport scheme used to reach a Phiremock server.
// Two Schemes are equal when their underlying strings are equal.
type Scheme struct {
	value string
}

// NewScheme validates s and returns it as a Scheme. Only "http" and "https"
// are accepted, case-sensitively and without surrounding whitespace.
func NewScheme(s string) (Scheme, error) {
	if !schemePattern.MatchString(s) {
		return Scheme{}, fmt.Errorf("%w: invalid scheme %q", ErrInvalidInput, s)
	}
	return Scheme{value: s}, nil
}

// HTTP returns the http scheme.
func HTTP() Scheme {
	return Scheme{value: SchemeHTTP}
}

// HTTPS returns the https scheme.
func HTTPS() Scheme {
	return Scheme{value: SchemeHTTPS}
}

// String returns the scheme exactly as it was constructed.
func (s Scheme) String() string {
	return s.value
}

// IsZero reports whether s is the zero Scheme, which no constructor returns.
func (s Scheme) IsZero() bool {
	return s.value == ""
}

// Equal reports whether s and other hold the same scheme.
func (s Scheme) Equal(other Scheme) bool {
	return s.value == other.value
}
