// Package jsonpath selects values from decoded JSON with JSONPath expressions.
package jsonpath

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Expr is a compiled JSONPath expression.
type Expr struct {
	raw  string
	expr jp.Expr
}

// Compile parses path. A leading "$" is optional.
func Compile(path string) (Expr, error) {
	if path == "" {
		return Expr{}, fmt.Errorf("jsonpath: empty expression")
	}
	if path[0] != '$' {
		if path[0] == '[' {
			path = "$" + path
		} else {
			path = "$." + path
		}
	}
	x, err := jp.ParseString(path)
	if err != nil {
		return Expr{}, fmt.Errorf("jsonpath: parsing %q: %w", path, err)
	}
	return Expr{raw: path, expr: x}, nil
}

// String returns the normalized expression.
func (e Expr) String() string {
	return e.raw
}

// Select returns every value matched in data, which must be a structure
// produced by encoding/json. It never returns nil.
func (e Expr) Select(data interface{}) []interface{} {
	if e.expr == nil {
		return []interface{}{}
	}
	results := e.expr.Get(data)
	if results == nil {
		return []interface{}{}
	}
	return results
}

// Project applies e to data and collapses a single match to the value itself.
// Zero matches yield nil.
func (e Expr) Project(data interface{}) interface{} {
	results := e.Select(data)
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	default:
		return results
	}
}

// Select compiles path and applies it to data.
func Select(path string, data interface{}) ([]interface{}, error) {
	e, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return e.Select(data), nil
}
