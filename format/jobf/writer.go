package jobf

import (
	"io"
	"strings"

	"mapping-io/internal/column"
	"mapping-io/internal/common"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as a JOBF file using the first destination
// namespace. JOBF cannot restructure packages or move classes between
// packages; such renames are dropped while the members of a moved class are
// still written.
type Writer struct {
	visitor.Nop

	w *column.Writer

	pkgName    string
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
	return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *Writer) VisitPackage(srcName string) (bool, error) {
	w.pkgName, w.dstName = srcName, ""

	return true, nil
}

func (w *Writer) VisitClass(srcName string) (bool, error) {
	w.className, w.dstName = srcName, ""

	return true, nil
}

func (w *Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.memberName, w.memberDesc, w.dstName = srcName, srcDesc, ""

	return srcDesc != "", nil
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

	owner := common.BinaryName(w.className)

	switch kind {
	case visitor.Package:
		if strings.Count(w.pkgName, "/") != strings.Count(w.dstName, "/") {
			return false, nil
		}

		w.w.Col("p").Raw(" " + common.BinaryName(w.pkgName) + assign + common.BinaryName(w.dstName))
	case visitor.Class:
		if common.PackageOf(w.className) != common.PackageOf(w.dstName) {
			return true, nil
		}

		w.w.Col("c").Raw(" " + owner + assign + common.SimpleName(w.dstName))
	case visitor.Field:
		w.w.Col("f").Raw(" " + owner + "." + w.memberName + ":" + w.memberDesc + assign + w.dstName)
	case visitor.Method:
		w.w.Col("m").Raw(" " + owner + "." + w.memberName + w.memberDesc + assign + w.dstName)
	default:
		return false, nil
	}

	w.w.EOL()

	return kind == visitor.Class, w.w.Err()
}
