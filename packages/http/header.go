package http

import (
	"fmt"
	"strings"
)

// Header is a single request header. Duplicate names are allowed and all
// occurrences are sent in input order.
type Header struct {
	Name  string
	Value string
}

// ParseHeader parses a "Name: Value" string into a Header. Only the first
// colon is significant; surrounding whitespace is trimmed from both sides.
func ParseHeader(s string) (Header, error) {
	name, value, found := strings.Cut(s, ":")
	if !found {
		return Header{}, &InvalidHeaderError{
			Reason: fmt.Sprintf("expected \"Name: Value\", got %q", s),
		}
	}
	return Header{
		Name:  strings.TrimSpace(name),
		Value: strings.TrimSpace(value),
	}, nil
}

// validateHeader checks that a header is syntactically acceptable before
// any network attempt: the name must be a printable HTTP token and the
// value must not contain control characters.
func validateHeader(h Header) error {
	if h.Name == "" {
		return &InvalidHeaderError{Name: h.Name, Value: h.Value, Reason: "empty header name"}
	}
	for i := 0; i < len(h.Name); i++ {
		if !isTokenChar(h.Name[i]) {
			return &InvalidHeaderError{Name: h.Name, Value: h.Value, Reason: "header name contains invalid character"}
		}
	}
	for i := 0; i < len(h.Value); i++ {
		c := h.Value[i]
		if c == '\r' || c == '\n' || (c < 0x20 && c != '\t') || c == 0x7f {
			return &InvalidHeaderError{Name: h.Name, Value: h.Value, Reason: "header value contains control character"}
		}
	}
	return nil
}

// isTokenChar reports whether c is valid in an HTTP field-name token per
// RFC 9110.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
