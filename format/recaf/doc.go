// Package recaf reads and writes the Recaf "simple" mapping format:
//
//	pkg/a pkg/Main
//	pkg/a.b I counter
//	pkg/a.c(I)V run
package recaf
