// Package diagnostic provides the severity-tagged channel through which
// mapping decoders report malformed input.
//
// Key capabilities:
//   - Line and column tagged diagnostics with stable codes
//   - Collecting, failing-at-threshold and discarding sinks
//   - Logging decorator for any sink
package diagnostic
