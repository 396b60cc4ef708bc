// Package output renders executed request outcomes for the terminal.
//
// The Printer owns the output stream contract: optional header echo
// (status line, header lines, blank line) followed by the verbatim body,
// per-URL labels for batches, error rendering for the typed error set,
// and an optional batch timing summary backed by HdrHistogram.
package output
