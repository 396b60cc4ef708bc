package http

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// InvalidURLError reports a URL that was rejected before any network I/O.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	if e.URL == "" {
		return "invalid URL: " + e.Reason
	}
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// InvalidHeaderError reports a header that failed parsing or syntax
// validation. No network attempt is made for the affected request.
type InvalidHeaderError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidHeaderError) Error() string {
	if e.Name == "" {
		return "invalid header: " + e.Reason
	}
	return fmt.Sprintf("invalid header %q: %s", e.Name, e.Reason)
}

// TransportError wraps DNS, connect, TLS, timeout and protocol-level
// failures from the underlying client. Server responses, including 4xx and
// 5xx, are never a TransportError.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout, either from the
// per-request deadline or the transport.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// FileWriteError reports a local I/O failure while capturing a response
// body to the configured output file.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("cannot write output file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
