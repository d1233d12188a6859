// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"errors"
	"strings"
)

// ErrHeaderFormat is returned by Header for input without a name or colon.
var ErrHeaderFormat = errors.New("expected 'Name: value'")

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Header parses "Name: value". Both parts are trimmed; the value may be
// empty and may itself contain colons.
func Header(s string) (name, value string, err error) {
	name, value, ok := KeyValue(s, ':')
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", ErrHeaderFormat
	}
	return name, strings.TrimSpace(value), nil
}
