// Package reader is the entry point for decoding mapping files. It detects
// the dialect when none is given and dispatches to the matching decoder.
package reader
