package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": "string"}
	}
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidator_ValidBody(t *testing.T) {
	v, err := NewValidator(writeSchema(t, userSchema))
	require.NoError(t, err)

	violations := v.Validate([]byte(`{"id": 1, "name": "ana"}`))

	assert.Empty(t, violations)
}

func TestValidator_InvalidBody(t *testing.T) {
	v, err := NewValidator(writeSchema(t, userSchema))
	require.NoError(t, err)

	violations := v.Validate([]byte(`{"id": "one"}`))

	assert.NotEmpty(t, violations)
}

func TestValidator_NonJSONBody(t *testing.T) {
	v, err := NewValidator(writeSchema(t, userSchema))
	require.NoError(t, err)

	violations := v.Validate([]byte(`<html></html>`))

	assert.Len(t, violations, 1)
}

func TestNewValidator_MissingFile(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read schema file")
}

func TestNewValidator_InvalidSchema(t *testing.T) {
	_, err := NewValidator(writeSchema(t, `{"type": 42}`))

	assert.Error(t, err)
}
