package tiny

import (
	"io"
	"strconv"

	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// V2Writer encodes visited mappings as a Tiny v2 file.
type V2Writer struct {
	visitor.Nop

	w           *column.Writer
	escapeNames bool

	dstNames []string
	srcName  string
	srcDesc  string
	lvIndex  int
	startOp  int
	lvtRow   int
}

var _ visitor.Visitor = (*V2Writer)(nil)

// NewV2Writer returns a writer emitting to w. Close flushes it.
func NewV2Writer(w io.Writer) *V2Writer {
	return &V2Writer{w: column.NewWriter(w, '\t', '\t')}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *V2Writer) Close() error {
	return w.w.Flush()
}

func (w *V2Writer) Flags() visitor.Flags {
	return visitor.NeedsHeaderMetadata | visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *V2Writer) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	w.w.Line(append([]string{"tiny", "2", "0", srcNamespace}, dstNamespaces...)...)
	w.dstNames = make([]string, len(dstNamespaces))

	return w.w.Err()
}

func (w *V2Writer) VisitMetadata(key, value string) error {
	if prop, ok := format.PropertyByID(key); ok {
		if name, ok := prop.NameFor(format.Tiny2File); ok {
			key = name
		}
	}

	if key == format.EscapedNames.ID {
		w.escapeNames = true
	}

	w.w.Indent(1).Col(key)
	if value != "" {
		w.w.Col(column.Escape(value))
	}

	w.w.EOL()

	return w.w.Err()
}

func (w *V2Writer) VisitClass(srcName string) (bool, error) {
	w.open(srcName, "")

	return true, nil
}

func (w *V2Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

	return true, nil
}

func (w *V2Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.open(srcName, srcDesc)

	return true, nil
}

func (w *V2Writer) VisitMethodArg(_, lvIndex int, srcName string) (bool, error) {
	w.open(srcName, "")
	w.lvIndex = lvIndex

	return true, nil
}

func (w *V2Writer) VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, _ int, srcName string) (bool, error) {
	w.open(srcName, "")
	w.lvIndex, w.startOp, w.lvtRow = lvIndex, startOpIdx, lvtRowIndex

	return true, nil
}

func (w *V2Writer) VisitDstName(_ visitor.ElementKind, ns int, name string) error {
	if ns >= 0 && ns < len(w.dstNames) {
		w.dstNames[ns] = name
	}

	return nil
}

func (w *V2Writer) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	switch kind {
	case visitor.Class:
		w.w.Col("c")
	case visitor.Field:
		w.w.Indent(1).Col("f").Col(w.srcDesc)
	case visitor.Method:
		w.w.Indent(1).Col("m").Col(w.srcDesc)
	case visitor.MethodArg:
		w.w.Indent(2).Col("p").Col(strconv.Itoa(w.lvIndex))
	case visitor.MethodVar:
		w.w.Indent(2).Col("v").Cols(strconv.Itoa(w.lvIndex), strconv.Itoa(w.startOp), strconv.Itoa(w.lvtRow))
	default:
		return false, nil
	}

	w.w.Col(w.name(w.srcName))

	for _, name := range w.dstNames {
		w.w.Col(w.name(name))
	}

	w.w.EOL()

	return true, w.w.Err()
}

func (w *V2Writer) VisitComment(kind visitor.ElementKind, comment string) error {
	w.w.Indent(kind.Level() + 1).Col("c").Col(column.Escape(comment)).EOL()

	return w.w.Err()
}

func (w *V2Writer) open(srcName, srcDesc string) {
	w.srcName, w.srcDesc = srcName, srcDesc
	clear(w.dstNames)
}

func (w *V2Writer) name(s string) string {
	if w.escapeNames {
		return column.Escape(s)
	}

	return s
}
