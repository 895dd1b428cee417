// Package diagnostic provides structured warnings and errors for a
// derive-gen run.
//
// Key capabilities:
//   - Per-record errors that abort generation of that record only
//   - Stable codes for each failure kind
//   - A combined error for callers that only need pass/fail
package diagnostic
