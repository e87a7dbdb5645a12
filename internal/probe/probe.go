package probe

import "context"

// CheckResult is the unified result of a single probe.
//
// Fields:
//   - Success: a response arrived within the timeout with a 2xx status.
//   - StatusCode: HTTP status code when a response arrived; 0 for transport errors and timeouts.
//   - Message: response status line or transport error text, for logs only.
type CheckResult struct {
	Success    bool
	LatencyMS  float64
	Message    string
	StatusCode int
}

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
