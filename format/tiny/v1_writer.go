package tiny

import (
	"io"
	"strings"

	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/visitor"
)

// V1Writer encodes visited mappings as a Tiny v1 file.
type V1Writer struct {
	visitor.Nop

	w *column.Writer

	dstNames  []string
	className string
	memberSrc string
	memberDsc string
}

var _ visitor.Visitor = (*V1Writer)(nil)

// NewV1Writer returns a writer emitting to w. Close flushes it.
func NewV1Writer(w io.Writer) *V1Writer {
	return &V1Writer{w: column.NewWriter(w, '\t', '\t')}
}

// Close flushes buffered output; it does not close the underlying writer.
func (w *V1Writer) Close() error {
	return w.w.Flush()
}

func (w *V1Writer) Flags() visitor.Flags {
	return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *V1Writer) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	w.w.Line(append([]string{"v1", srcNamespace}, dstNamespaces...)...)
	w.dstNames = make([]string, len(dstNamespaces))

	return w.w.Err()
}

func (w *V1Writer) VisitMetadata(key, value string) error {
	prop, ok := format.PropertyByID(key)
	if !ok {
		return nil
	}

	name, ok := prop.NameFor(format.TinyFile)
	if !ok {
		return nil
	}

	_, kind, _ := strings.Cut(name, " ")
	w.w.Line(intermediaryCounterPrefix + kind + " " + value)

	return w.w.Err()
}

func (w *V1Writer) VisitClass(srcName string) (bool, error) {
	w.className = srcName
	clear(w.dstNames)

	return true, nil
}

func (w *V1Writer) VisitField(srcName, srcDesc string) (bool, error) {
	w.memberSrc, w.memberDsc = srcName, srcDesc
	clear(w.dstNames)

	return true, nil
}

func (w *V1Writer) VisitMethod(srcName, srcDesc string) (bool, error) {
	w.memberSrc, w.memberDsc = srcName, srcDesc
	clear(w.dstNames)

	return true, nil
}

func (w *V1Writer) VisitMethodArg(int, int, string) (bool, error) {
	return false, nil
}

func (w *V1Writer) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *V1Writer) VisitDstName(_ visitor.ElementKind, ns int, name string) error {
	if ns >= 0 && ns < len(w.dstNames) {
		w.dstNames[ns] = name
	}

	return nil
}

func (w *V1Writer) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	switch kind {
	case visitor.Class:
		w.w.Col("CLASS").Col(w.className)
	case visitor.Field:
		w.w.Col("FIELD").Cols(w.className, w.memberDsc, w.memberSrc)
	case visitor.Method:
		w.w.Col("METHOD").Cols(w.className, w.memberDsc, w.memberSrc)
	default:
		return false, nil
	}

	w.w.Cols(w.dstNames...).EOL()

	return kind == visitor.Class, w.w.Err()
}
