// Package enigma reads and writes Enigma mappings, either as a single file or
// as a directory holding one file per top-level class.
//
// Enigma nests members under classes and inner classes under their outer
// class by tab indentation; inner class names are relative to the outer class.
package enigma
