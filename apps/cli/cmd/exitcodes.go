package cmd

// Exit codes for the bcurl CLI
const (
	// ExitSuccess indicates every request returned 2xx with no failures
	ExitSuccess = 0

	// ExitUsageError indicates invalid arguments before any request ran
	ExitUsageError = 2

	// ExitRequestFailure indicates at least one request yielded a non-2xx
	// status, a transport error, or a local failure. Matches curl's exit
	// code for HTTP errors.
	ExitRequestFailure = 22
)
