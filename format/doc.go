// Package format enumerates the supported mapping dialects and detects
// which one a stream or path holds.
//
// Key capabilities:
//   - Closed Format enumeration with static per-dialect metadata
//   - Content-prefix and directory based detection
//   - Registry of standard metadata properties and their per-dialect names
package format
