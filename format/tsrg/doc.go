// Package tsrg reads and writes TSRG, its multi-namespace successor TSRG2 and
// the flat CSRG dialect.
//
// TSRG and TSRG2 nest members under classes by tab indentation. CSRG lines
// carry the owning class on every member line and are told apart from TSRG
// class lines by their field count, so a single decoder handles all three.
package tsrg
