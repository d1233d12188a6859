package connection

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"
)

// Host is the hostname (or IP address) of a Phiremock server.
type Host struct {
	value string
}

// NewHost validates and returns a Host. The name must be non-empty and must not
// contain whitespace, a scheme or a path.
func NewHost(name string) (Host, error) {
	if name == "" {
		return Host{}, fmt.Errorf("%w: host cannot be empty", ErrInvalidInput)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return Host{}, fmt.Errorf("%w: host %q contains whitespace", ErrInvalidInput, name)
	}
	if strings.ContainsAny(name, "/?#@") {
		return Host{}, fmt.Errorf("%w: host %q must be a bare hostname", ErrInvalidInput, name)
	}
	return Host{value: name}, nil
}

// String returns the hostname.
func (h Host) String() string {
	return h.value
}

// Port is the TCP port of a Phiremock server.
type Port struct {
	value int
}

// NewPort validates and returns a Port in the range 1-65535.
func NewPort(n int) (Port, error) {
	if n < 1 || n > 65535 {
		return Port{}, fmt.Errorf("%w: port %d is out of range (1-65535)", ErrInvalidInput, n)
	}
	return Port{value: n}, nil
}

// Int returns the port number.
func (p Port) Int() int {
	return p.value
}

// String returns the port number in decimal.
func (p Port) String() string {
	return strconv.Itoa(p.value)
}

// Endpoint is the network location of a Phiremock server.
type Endpoint struct {
	Host Host
	Port Port
}

// NewEndpoint validates host and port and combines them.
func NewEndpoint(host string, port int) (Endpoint, error) {
	h, err := NewHost(host)
	if err != nil {
		return Endpoint{}, err
	}
	p, err := NewPort(port)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{Host: h, Port: p}, nil
}

// Address returns host:port, bracketing IPv6 literals.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host.String(), e.Port.String())
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return e.Address()
}
