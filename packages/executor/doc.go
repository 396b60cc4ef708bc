// Package executor orchestrates one or many request configs against a
// single shared HTTP client.
//
// It provides:
//   - Sequential execution in input order with connection reuse
//   - Parallel fan-out with one worker per URL and input-order results
//   - Per-URL outcomes with timing, and batch-level aggregate success
//   - Optional start-rate limiting and response schema validation
//
// A failure on one URL never aborts processing of the rest; worker panics
// in parallel mode become that URL's error outcome.
package executor
