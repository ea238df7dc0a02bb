// Package visitortest provides a recording visitor for decoder tests.
package visitortest

import (
	"fmt"
	"strings"

	"mapping-io/visitor"
)

// Recorder records every visitor call as a compact string.
type Recorder struct {
	// Want is returned from Flags.
	Want visitor.Flags
	// Passes is the number of passes to request; values below 2 mean one.
	Passes int
	// Skip lists element kinds whose open call returns false.
	Skip map[visitor.ElementKind]bool
	// SkipHeader and SkipContent make the phase calls return false.
	SkipHeader  bool
	SkipContent bool

	Calls []string

	pass int
}

var _ visitor.Visitor = (*Recorder)(nil)

// Pass returns the number of completed passes.
func (r *Recorder) Pass() int {
	return r.pass
}

// String joins the recorded calls, one per line.
func (r *Recorder) String() string {
	return strings.Join(r.Calls, "\n")
}

func (r *Recorder) Flags() visitor.Flags {
	return r.Want
}

func (r *Recorder) VisitHeader() (bool, error) {
	r.add("header")

	return !r.SkipHeader, nil
}

func (r *Recorder) VisitNamespaces(src string, dst []string) error {
	r.add("namespaces %s %s", src, strings.Join(dst, ","))

	return nil
}

func (r *Recorder) VisitMetadata(key, value string) error {
	r.add("metadata %s=%s", key, value)

	return nil
}

func (r *Recorder) VisitContent() (bool, error) {
	r.add("content")

	return !r.SkipContent, nil
}

func (r *Recorder) VisitPackage(srcName string) (bool, error) {
	r.add("package %s", srcName)

	return !r.Skip[visitor.Package], nil
}

func (r *Recorder) VisitClass(srcName string) (bool, error) {
	r.add("class %s", srcName)

	return !r.Skip[visitor.Class], nil
}

func (r *Recorder) VisitField(srcName, srcDesc string) (bool, error) {
	r.add("field %s %s", srcName, srcDesc)

	return !r.Skip[visitor.Field], nil
}

func (r *Recorder) VisitMethod(srcName, srcDesc string) (bool, error) {
	r.add("method %s %s", srcName, srcDesc)

	return !r.Skip[visitor.Method], nil
}

func (r *Recorder) VisitMethodArg(argPosition, lvIndex int, srcName string) (bool, error) {
	r.add("arg %d %d %s", argPosition, lvIndex, srcName)

	return !r.Skip[visitor.MethodArg], nil
}

func (r *Recorder) VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, endOpIdx int, srcName string) (bool, error) {
	r.add("var %d %d %d %d %s", lvtRowIndex, lvIndex, startOpIdx, endOpIdx, srcName)

	return !r.Skip[visitor.MethodVar], nil
}

func (r *Recorder) VisitEnd() (bool, error) {
	r.add("end")
	r.pass++

	return r.pass >= r.Passes, nil
}

func (r *Recorder) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
	r.add("dst %s %d %s", kind, ns, name)

	return nil
}

func (r *Recorder) VisitDstDesc(kind visitor.ElementKind, ns int, desc string) error {
	r.add("dstdesc %s %d %s", kind, ns, desc)

	return nil
}

func (r *Recorder) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	r.add("enter %s", kind)

	return true, nil
}

func (r *Recorder) VisitComment(kind visitor.ElementKind, comment string) error {
	r.add("comment %s %s", kind, comment)

	return nil
}

func (r *Recorder) add(format string, args ...any) {
	r.Calls = append(r.Calls, strings.TrimRight(fmt.Sprintf(format, args...), " "))
}
