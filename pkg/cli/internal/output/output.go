// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Stdout and Stderr are where results and warnings go.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// MaxCellWidth is the widest value Truncate keeps intact in table cells.
const MaxCellWidth = 48

// JSON writes indented JSON to Stdout.
func JSON(v interface{}) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table creates an aligned table writer for Stdout and writes the header
// row when columns are given. Call Flush when done writing.
func Table(columns ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(Stdout, 0, 0, 2, ' ', 0)
	if len(columns) > 0 {
		_, _ = fmt.Fprintln(w, strings.Join(columns, "\t"))
	}
	return w
}

// Truncate shortens s to max runes, marking the cut with "...".
// If max <= 0, uses MaxCellWidth. Tabs and newlines become spaces so a
// value cannot break table alignment.
func Truncate(s string, max int) string {
	if max <= 0 {
		max = MaxCellWidth
	}
	s = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ").Replace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Warn prints a warning message to Stderr.
func Warn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stderr, "Warning: "+format+"\n", args...)
}
