package srg

import (
	"cmp"
	"io"
	"strconv"

	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// JamWriter encodes visited mappings as JAM. Only the first destination
// namespace is written; members and parameters without a destination name
// are omitted.
type JamWriter struct {
	visitor.Nop

	w *column.Writer

	srcClass   string
	dstClass   string
	memberName string
	memberDesc string
	argPos     int
	dstName    string
}

var _ visitor.Visitor = (*JamWriter)(nil)

// NewJamWriter returns a writer emitting to w. Close flushes it.
func NewJamWriter(w io.Writer) *JamWriter {
	return &JamWriter{w: column.NewWriter(w, '\t', ' ')}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *JamWriter) Close() error {
	return w.w.Flush()
}

func (w *JamWriter) Flags() visitor.Flags {
	return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *JamWriter) VisitPackage(string) (bool, error) {
	return false, nil
}

func (w *JamWriter) VisitClass(srcName string) (bool, error) {
	w.srcClass, w.dstClass = srcName, ""

	return true, nil
}

func (w *JamWriter) VisitField(srcName, srcDesc string) (bool, error) {
	w.memberName, w.memberDesc, w.dstName = srcName, srcDesc, ""

	return true, nil
}

func (w *JamWriter) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.memberName, w.memberDesc, w.dstName = srcName, srcDesc, ""

	return true, nil
}

func (w *JamWriter) VisitMethodArg(argPosition, _ int, _ string) (bool, error) {
	w.argPos, w.dstName = argPosition, ""

	return argPosition >= 0, nil
}

func (w *JamWriter) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *JamWriter) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
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

func (w *JamWriter) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	switch kind {
	case visitor.Class:
		w.w.Line("CL", w.srcClass, cmp.Or(w.dstClass, w.srcClass))

		return true, w.w.Err()
	case visitor.Field:
		if w.dstName != "" {
			w.w.Line("FD", w.srcClass, w.memberName, w.memberDesc, w.dstName)
		}
	case visitor.Method:
		if w.dstName != "" {
			w.w.Line("MD", w.srcClass, w.memberName, w.memberDesc, w.dstName)
		}

		return true, w.w.Err()
	case visitor.MethodArg:
		if w.dstName != "" {
			w.w.Line("MP", w.srcClass, w.memberName, w.memberDesc, strconv.Itoa(w.argPos), w.dstName)
		}
	}

	return false, w.w.Err()
}
