// Package column splits line-oriented mapping files into delimited columns.
//
// Key capabilities:
//   - Indent-aware line stepping with dedent and extra-indent detection
//   - Plain, escaped and integer column parsing
//   - Nested mark/reset over a growable lookback buffer
//   - Position-tagged diagnostics through Reporter
package column
