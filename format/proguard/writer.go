package proguard

import (
	"cmp"
	"io"
	"strings"

	"mapping-io/internal/column"
	"mapping-io/internal/common"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as a ProGuard file using the first
// destination namespace. Members whose descriptor cannot be converted are
// skipped.
type Writer struct {
	visitor.Nop

	w *column.Writer

	srcName string
	srcDesc string
	dstName string
}

var _ visitor.Visitor = (*Writer)(nil)

// NewWriter returns a writer emitting to w. Close flushes it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: column.NewWriter(w, ' ', ' ')}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *Writer) Close() error {
	return w.w.Flush()
}

func (w *Writer) Flags() visitor.Flags {
	return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *Writer) VisitClass(srcName string) (bool, error) {
	w.open(srcName, "")

	return true, nil
}

func (w *Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

	return srcDesc != "", nil
}

func (w *Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

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
	dst := cmp.Or(w.dstName, w.srcName)

	switch kind {
	case visitor.Class:
		w.w.Raw(common.BinaryName(w.srcName) + arrow + common.BinaryName(dst) + ":").EOL()

		return true, w.w.Err()
	case visitor.Field:
		typ, err := common.JavaType(w.srcDesc)
		if err != nil {
			return false, nil
		}

		w.w.Indent(4).Raw(typ + " " + w.srcName + arrow + dst).EOL()
	case visitor.Method:
		args, ret, err := common.JavaMethodTypes(w.srcDesc)
		if err != nil {
			return false, nil
		}

		w.w.Indent(4).Raw(ret + " " + w.srcName + "(" + strings.Join(args, ",") + ")" + arrow + dst).EOL()
	}

	return false, w.w.Err()
}

func (w *Writer) open(srcName, srcDesc string) {
	w.srcName, w.srcDesc, w.dstName = srcName, srcDesc, ""
}
