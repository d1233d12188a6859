// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"strings"

	"github.com/getmockd/phiremock/pkg/cli/internal/parse"
)

// Header is one "Name: value" pair given on the command line.
type Header struct {
	Name  string
	Value string
}

// Headers implements pflag.Value for repeatable "Name: value" flags.
// Malformed values are rejected while flags are parsed. Order is kept.
type Headers []Header

// String returns the headers as a comma-separated list.
func (h *Headers) String() string {
	parts := make([]string, len(*h))
	for i, hh := range *h {
		parts[i] = hh.Name + ": " + hh.Value
	}
	return strings.Join(parts, ", ")
}

// Set parses and appends one header.
func (h *Headers) Set(value string) error {
	name, v, err := parse.Header(value)
	if err != nil {
		return err
	}
	*h = append(*h, Header{Name: name, Value: v})
	return nil
}

// Type specifies the type label for Cobra flags.
func (h *Headers) Type() string {
	return "header"
}
