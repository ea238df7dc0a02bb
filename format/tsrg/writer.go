package tsrg

import (
	"cmp"
	"fmt"
	"io"
	"strconv"

	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as TSRG, TSRG2 or CSRG. TSRG and CSRG
// only hold the first destination namespace. Missing destination names fall
// back to the source name.
type Writer struct {
	visitor.Nop

	w      *column.Writer
	format format.Format

	dstNames []string
	srcClass string
	srcName  string
	srcDesc  string
	lvIndex  int
}

var _ visitor.Visitor = (*Writer)(nil)

// NewWriter returns a writer for f, which must be TsrgFile, Tsrg2File or
// CsrgFile.
func NewWriter(w io.Writer, f format.Format) (*Writer, error) {
	switch f {
	case format.TsrgFile, format.Tsrg2File, format.CsrgFile:
	default:
		return nil, fmt.Errorf("%w: %s is not a TSRG dialect", format.ErrUnknownFormat, f)
	}

	return &Writer{w: column.NewWriter(w, '\t', ' '), format: f, dstNames: make([]string, 1)}, nil
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *Writer) Close() error {
	return w.w.Flush()
}

func (w *Writer) Flags() visitor.Flags {
	return visitor.NeedsSrcMethodDesc
}

func (w *Writer) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	if w.format != format.Tsrg2File {
		return nil
	}

	w.w.Line(append([]string{tsrg2Magic, srcNamespace}, dstNamespaces...)...)
	w.dstNames = make([]string, len(dstNamespaces))

	return w.w.Err()
}

func (w *Writer) VisitPackage(string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitClass(srcName string) (bool, error) {
	w.srcClass = srcName
	w.open(srcName, "")

	return true, nil
}

func (w *Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

	return true, nil
}

func (w *Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

	return true, nil
}

func (w *Writer) VisitMethodArg(_, lvIndex int, srcName string) (bool, error) {
	w.open(srcName, "")
	w.lvIndex = lvIndex

	return w.format == format.Tsrg2File && lvIndex >= 0, nil
}

func (w *Writer) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *Writer) VisitDstName(_ visitor.ElementKind, ns int, name string) error {
	if ns >= 0 && ns < len(w.dstNames) {
		w.dstNames[ns] = name
	}

	return nil
}

func (w *Writer) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	if w.format == format.CsrgFile {
		return w.writeCsrg(kind)
	}

	switch kind {
	case visitor.Class:
		w.w.Col(w.srcClass)
	case visitor.Field:
		w.w.Indent(1).Col(w.srcName)
		if w.format == format.Tsrg2File && w.srcDesc != "" {
			w.w.Col(w.srcDesc)
		}
	case visitor.Method:
		w.w.Indent(1).Cols(w.srcName, w.srcDesc)
	case visitor.MethodArg:
		w.w.Indent(2).Cols(strconv.Itoa(w.lvIndex), w.srcName)
	default:
		return false, nil
	}

	w.writeDstNames()
	w.w.EOL()

	return kind == visitor.Class || kind == visitor.Method, w.w.Err()
}

func (w *Writer) writeCsrg(kind visitor.ElementKind) (bool, error) {
	switch kind {
	case visitor.Class:
		w.w.Line(w.srcClass, cmp.Or(w.dstNames[0], w.srcClass))

		return true, w.w.Err()
	case visitor.Field:
		w.w.Line(w.srcClass, w.srcName, cmp.Or(w.dstNames[0], w.srcName))
	case visitor.Method:
		w.w.Line(w.srcClass, w.srcName, w.srcDesc, cmp.Or(w.dstNames[0], w.srcName))
	}

	return false, w.w.Err()
}

func (w *Writer) writeDstNames() {
	for _, name := range w.dstNames {
		w.w.Col(cmp.Or(name, w.srcName))
	}
}

func (w *Writer) open(srcName, srcDesc string) {
	w.srcName, w.srcDesc = srcName, srcDesc
	clear(w.dstNames)
}
