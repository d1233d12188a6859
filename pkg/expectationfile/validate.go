package expectationfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/phiremock/pkg/convert"
	"github.com/getmockd/phiremock/pkg/domain"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("expectation.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding expectation schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("expectation.json")
	})
	return schema, schemaErr
}

// Problem is one schema violation.
type Problem struct {
	// Pointer is the JSON pointer of the offending value, "" for the root.
	Pointer string
	Message string
}

func (p Problem) String() string {
	if p.Pointer == "" {
		return p.Message
	}
	return p.Pointer + ": " + p.Message
}

// ValidationError lists every problem found in one expectation.
type ValidationError struct {
	Name     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("%s: invalid expectation: %s", e.Name, strings.Join(msgs, "; "))
}

// Validate checks f against the expectation schema and then decodes it,
// so both structural and semantic errors are reported.
func Validate(f File) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(f.JSON, &doc); err != nil {
		return fmt.Errorf("%s: %w", f.Name(), err)
	}
	if err := s.Validate(doc); err != nil {
		verr := &ValidationError{Name: f.Name()}
		if schemaErr, ok := err.(*jsonschema.ValidationError); ok {
			collectProblems(schemaErr, verr)
		} else {
			verr.Problems = append(verr.Problems, Problem{Message: err.Error()})
		}
		return verr
	}

	if _, err := Decode(f); err != nil {
		return err
	}
	return nil
}

// Decode converts f into an expectation and checks its invariants.
func Decode(f File) (*domain.Expectation, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(f.JSON, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	e, err := convert.MapToExpectation{}.Decode(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return e, nil
}

func collectProblems(err *jsonschema.ValidationError, out *ValidationError) {
	if len(err.Causes) == 0 {
		out.Problems = append(out.Problems, Problem{Pointer: err.InstanceLocation, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(cause, out)
	}
}
