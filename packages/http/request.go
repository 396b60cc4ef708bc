package http

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is applied when a config carries no explicit timeout.
const DefaultTimeout = 30 * time.Second

// Method is an HTTP request method supported by bcurl.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
	MethodPatch  Method = "PATCH"
)

// ParseMethod parses a case-insensitive method name.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(s)); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead, MethodPatch:
		return m, nil
	default:
		return "", fmt.Errorf("unknown HTTP method: %s", s)
	}
}

// RequestConfig describes a single request. It is built with chainable
// setters and must not be mutated once handed to Client.Execute; parallel
// workers each receive their own Clone.
type RequestConfig struct {
	URL             string
	Method          Method
	Headers         []Header
	Body            string
	Timeout         time.Duration
	FollowRedirects bool
	Compression     bool
	Verbose         bool
	OutputFile      string
	IncludeHeaders  bool
}

// NewRequestConfig returns a config for the given URL with defaults:
// GET, no headers, no body, 30s timeout, redirects followed, compression
// accepted, all other flags off.
func NewRequestConfig(url string) *RequestConfig {
	return &RequestConfig{
		URL:             url,
		Method:          MethodGet,
		Timeout:         DefaultTimeout,
		FollowRedirects: true,
		Compression:     true,
	}
}

func (c *RequestConfig) SetMethod(m Method) *RequestConfig {
	c.Method = m
	return c
}

// AddHeader appends a header. Duplicates are kept and all are sent.
func (c *RequestConfig) AddHeader(name, value string) *RequestConfig {
	c.Headers = append(c.Headers, Header{Name: name, Value: value})
	return c
}

func (c *RequestConfig) SetBody(body string) *RequestConfig {
	c.Body = body
	return c
}

func (c *RequestConfig) SetTimeout(d time.Duration) *RequestConfig {
	c.Timeout = d
	return c
}

func (c *RequestConfig) SetFollowRedirects(follow bool) *RequestConfig {
	c.FollowRedirects = follow
	return c
}

func (c *RequestConfig) SetCompression(enabled bool) *RequestConfig {
	c.Compression = enabled
	return c
}

func (c *RequestConfig) SetVerbose(v bool) *RequestConfig {
	c.Verbose = v
	return c
}

func (c *RequestConfig) SetOutputFile(path string) *RequestConfig {
	c.OutputFile = path
	return c
}

func (c *RequestConfig) SetIncludeHeaders(include bool) *RequestConfig {
	c.IncludeHeaders = include
	return c
}

// Clone returns an independent copy, including the header slice.
func (c *RequestConfig) Clone() *RequestConfig {
	out := *c
	out.Headers = make([]Header, len(c.Headers))
	copy(out.Headers, c.Headers)
	return &out
}

// timeout returns the effective round-trip deadline.
func (c *RequestConfig) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
