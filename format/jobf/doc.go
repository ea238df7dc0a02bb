// Package jobf reads and writes JOBF mappings.
//
// JOBF lines rename packages, classes (within their package) and members:
//
//	p pkg.old = pkg.new
//	c pkg.Main = Renamed
//	f pkg.Main.counter:I = count
//	m pkg.Main.run(I)V = execute
package jobf
