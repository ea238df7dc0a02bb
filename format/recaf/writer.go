package recaf

import (
	"io"

	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as a Recaf Simple file using the first
// destination namespace. Elements without a destination name are omitted.
type Writer struct {
	visitor.Nop

	w *column.Writer

	className  string
	memberName string
	memberDesc string
	dstName    string
}

var _ visitor.Visitor = (*Writer)(nil)

// NewWriter returns a writer emitting to w. Close flushes it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: column.NewWriter(w, '\t', ' ')}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *Writer) Close() error {
	return w.w.Flush()
}

func (w *Writer) Flags() visitor.Flags {
	return visitor.NeedsSrcMethodDesc
}

func (w *Writer) VisitClass(srcName string) (bool, error) {
	w.className, w.dstName = srcName, ""

	return true, nil
}

func (w *Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.memberName, w.memberDesc, w.dstName = srcName, srcDesc, ""

	return true, nil
}

func (w *Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.memberName, w.memberDesc, w.dstName = srcName, srcDesc, ""

	return srcDesc != "", nil
}

func (w *Writer) VisitMethodArg(int, int, string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitDstName(_ visitor.ElementKind, ns int, name string) error {
	if ns == 0 {
		w.dstName = name
	}

	return nil
}

func (w *Writer) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	if w.dstName == "" {
		return kind == visitor.Class, nil
	}

	switch kind {
	case visitor.Class:
		w.w.Col(w.className)
	case visitor.Field:
		w.w.Col(w.className + "." + w.memberName)
		if w.memberDesc != "" {
			w.w.Col(w.memberDesc)
		}
	case visitor.Method:
		w.w.Col(w.className + "." + w.memberName + w.memberDesc)
	default:
		return false, nil
	}

	w.w.Col(w.dstName).EOL()

	return kind == visitor.Class, w.w.Err()
}
