// Package tiny reads and writes the Tiny v1 and Tiny v2 mapping dialects.
//
// Tiny v1 is a flat, tab-separated dialect with one line per class, field or
// method. Tiny v2 nests members under classes and parameters, variables and
// comments under members by tab indentation, and can escape names.
package tiny
