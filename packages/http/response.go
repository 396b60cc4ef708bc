package http

import (
	"sort"
	"strings"
	"time"
)

// Response is the normalized result of one executed request. Header names
// are lower-cased on capture, so lookup is case-insensitive by construction.
// A Response is never mutated after Execute returns it.
type Response struct {
	StatusCode int
	StatusText string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// Header returns the value for the given name, matched case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// HeaderNames returns the captured header names in sorted order, for
// deterministic echo output.
func (r *Response) HeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
