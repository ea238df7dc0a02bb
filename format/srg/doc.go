// Package srg reads and writes the space-separated SRG family of dialects:
// SRG, its descriptor-carrying extension XSRG, and JAM.
//
// All three carry a single destination namespace whose name is supplied by
// the caller.
package srg
