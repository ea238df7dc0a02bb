package srg

import (
	"cmp"
	"io"

	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as SRG or XSRG. Only the first destination
// namespace is written.
type Writer struct {
	visitor.Nop

	w    *column.Writer
	xsrg bool

	srcClass string
	dstClass string
	srcName  string
	srcDesc  string
	dstName  string
	dstDesc  string
}

var _ visitor.Visitor = (*Writer)(nil)

// NewWriter returns an SRG writer, or an XSRG writer when xsrg is set.
func NewWriter(w io.Writer, xsrg bool) *Writer {
	return &Writer{w: column.NewWriter(w, '\t', ' '), xsrg: xsrg}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *Writer) Close() error {
	return w.w.Flush()
}

func (w *Writer) Flags() visitor.Flags {
	if w.xsrg {
		return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc | visitor.NeedsDstFieldDesc | visitor.NeedsDstMethodDesc
	}

	return visitor.NeedsSrcMethodDesc | visitor.NeedsDstMethodDesc
}

func (w *Writer) VisitPackage(string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitClass(srcName string) (bool, error) {
	w.srcClass, w.dstClass = srcName, ""

	return true, nil
}

func (w *Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.srcName, w.srcDesc, w.dstName, w.dstDesc = srcName, srcDesc, "", ""

	return true, nil
}

func (w *Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.srcName, w.srcDesc, w.dstName, w.dstDesc = srcName, srcDesc, "", ""

	return true, nil
}

func (w *Writer) VisitMethodArg(int, int, string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
	if ns != 0 {
		return nil
	}

	if kind == visitor.Class {
		w.dstClass = name
	} else {
		w.dstName = name
	}

	return nil
}

func (w *Writer) VisitDstDesc(_ visitor.ElementKind, ns int, desc string) error {
	if ns == 0 {
		w.dstDesc = desc
	}

	return nil
}

func (w *Writer) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	switch kind {
	case visitor.Class:
		w.w.Line("CL:", w.srcClass, cmp.Or(w.dstClass, w.srcClass))

		return true, w.w.Err()
	case visitor.Field:
		w.w.Col("FD:").Col(w.srcClass + "/" + w.srcName)
		if w.xsrg {
			w.w.Col(w.srcDesc)
		}

		w.w.Col(cmp.Or(w.dstClass, w.srcClass) + "/" + cmp.Or(w.dstName, w.srcName))
		if w.xsrg {
			w.w.Col(cmp.Or(w.dstDesc, w.srcDesc))
		}

		w.w.EOL()
	case visitor.Method:
		w.w.Line("MD:", w.srcClass+"/"+w.srcName, w.srcDesc,
			cmp.Or(w.dstClass, w.srcClass)+"/"+cmp.Or(w.dstName, w.srcName), cmp.Or(w.dstDesc, w.srcDesc))
	}

	return false, w.w.Err()
}
