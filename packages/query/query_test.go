package query

import (
	"testing"

	"github.com/abdul-hamid-achik/bcurl/packages/http"
	"github.com/stretchr/testify/assert"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       []byte(body),
	}
}

func TestExtract(t *testing.T) {
	resp := jsonResponse(`{"user":{"name":"ana","tags":["a","b"]}}`)

	value, ok := Extract(resp, "user.name")
	assert.True(t, ok)
	assert.Equal(t, "ana", value)

	value, ok = Extract(resp, "user.tags.1")
	assert.True(t, ok)
	assert.Equal(t, "b", value)
}

func TestExtract_MissingPath(t *testing.T) {
	resp := jsonResponse(`{"user":{"name":"ana"}}`)

	_, ok := Extract(resp, "user.email")
	assert.False(t, ok)
}

func TestExtract_NonJSONResponse(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Headers:    map[string]string{"content-type": "text/html"},
		Body:       []byte(`<html></html>`),
	}

	_, ok := Extract(resp, "user.name")
	assert.False(t, ok)
}
