// Package http provides the HTTP request execution layer for bcurl.
//
// It wraps the standard library's http package with:
//   - A builder-style RequestConfig describing one request
//   - A connection-pooling Client with per-request timeout, redirect and
//     compression handling
//   - A normalized Response with case-insensitive header lookup
//   - A closed set of typed errors rendered by the presentation layer
package http
