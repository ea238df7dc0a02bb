package enigma

import (
	"io"
	"strconv"
	"strings"

	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// Writer encodes visited mappings as an Enigma file. Only the first
// destination namespace is written; inner classes are written with their full
// '$'-joined names at the top level.
type Writer struct {
	visitor.Nop

	w *column.Writer

	srcName string
	srcDesc string
	dstName string
	lvIndex int
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

func (w *Writer) VisitClass(srcName string) (bool, error) {
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

	return lvIndex >= 0, nil
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
	switch kind {
	case visitor.Class:
		w.w.Col("CLASS").Col(w.srcName)
	case visitor.Field:
		w.w.Indent(1).Col("FIELD").Col(w.srcName)
	case visitor.Method:
		w.w.Indent(1).Col("METHOD").Col(w.srcName)
	case visitor.MethodArg:
		w.w.Indent(2).Col("ARG").Col(strconv.Itoa(w.lvIndex))
	default:
		return false, nil
	}

	if w.dstName != "" {
		w.w.Col(w.dstName)
	}

	if kind == visitor.Field || kind == visitor.Method {
		w.w.Col(w.srcDesc)
	}

	w.w.EOL()

	return true, w.w.Err()
}

func (w *Writer) VisitComment(kind visitor.ElementKind, comment string) error {
	for line := range strings.SplitSeq(comment, "\n") {
		w.w.Indent(kind.Level() + 1).Col("COMMENT")
		if line != "" {
			w.w.Col(line)
		}

		w.w.EOL()
	}

	return w.w.Err()
}

func (w *Writer) open(srcName, srcDesc string) {
	w.srcName, w.srcDesc, w.dstName = srcName, srcDesc, ""
}
