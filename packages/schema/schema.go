// Package schema validates JSON response bodies against a JSON Schema
// file.
package schema

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// Validator holds a compiled JSON Schema and checks response bodies
// against it. A Validator is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator reads and compiles the schema at path.
func NewValidator(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read schema file: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks body against the schema and returns one message per
// violation. A body that is not valid JSON counts as a single violation.
func (v *Validator) Validate(body []byte) []string {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []string{fmt.Sprintf("body is not valid JSON: %v", err)}
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return messages
}
