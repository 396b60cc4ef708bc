package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestConfig_Defaults(t *testing.T) {
	cfg := NewRequestConfig("https://example.com")

	assert.Equal(t, "https://example.com", cfg.URL)
	assert.Equal(t, MethodGet, cfg.Method)
	assert.Empty(t, cfg.Headers)
	assert.Empty(t, cfg.Body)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.FollowRedirects)
	assert.True(t, cfg.Compression)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.OutputFile)
	assert.False(t, cfg.IncludeHeaders)
}

func TestRequestConfig_ChainedSetters(t *testing.T) {
	cfg := NewRequestConfig("https://example.com").
		SetMethod(MethodPost).
		AddHeader("Content-Type", "application/json").
		AddHeader("Content-Type", "text/plain").
		SetBody(`{"name":"test"}`).
		SetTimeout(5 * time.Second).
		SetFollowRedirects(false).
		SetCompression(false)

	assert.Equal(t, MethodPost, cfg.Method)
	assert.Len(t, cfg.Headers, 2)
	assert.Equal(t, `{"name":"test"}`, cfg.Body)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.FollowRedirects)
	assert.False(t, cfg.Compression)
}

func TestRequestConfig_Clone(t *testing.T) {
	orig := NewRequestConfig("https://example.com").
		AddHeader("Accept", "application/json")

	clone := orig.Clone()
	clone.AddHeader("Authorization", "Bearer token")

	assert.Len(t, orig.Headers, 1)
	assert.Len(t, clone.Headers, 2)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("get")
	require.NoError(t, err)
	assert.Equal(t, MethodGet, m)

	m, err = ParseMethod("POST")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, m)

	m, err = ParseMethod("Delete")
	require.NoError(t, err)
	assert.Equal(t, MethodDelete, m)
}

func TestParseMethod_Unknown(t *testing.T) {
	_, err := ParseMethod("FETCH")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown HTTP method")
}

func TestRequestConfig_TimeoutFallback(t *testing.T) {
	cfg := &RequestConfig{URL: "https://example.com"}

	assert.Equal(t, DefaultTimeout, cfg.timeout())
}
