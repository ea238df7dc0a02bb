package tiny

import (
	"errors"
	"fmt"
	"io"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ErrNoV2Header is returned for input that does not start with a Tiny v2 header.
var ErrNoV2Header = errors.New("invalid/unsupported tiny file: no tiny 2 header")

// errReported marks a problem already handed to the sink; the caller skips
// the current line.
var errReported = errors.New("reported")

// NamespacesV2 reads only the header of a Tiny v2 file.
func NamespacesV2(r io.Reader) (string, []string, error) {
	cr, err := column.NewReader(r, '\t', '\t')
	if err != nil {
		return "", nil, err
	}

	return readV2Header(cr)
}

// ReadV2 decodes a Tiny v2 file into v, reporting malformed lines to sink.
func ReadV2(r io.Reader, v visitor.Visitor, sink diagnostic.Sink) error {
	d, err := newV2Decoder(r, sink)
	if err != nil {
		return err
	}

	return pass.Run(d.r, v, pass.Options{}, func(v visitor.Visitor, first bool) error {
		visitHeader, err := v.VisitHeader()
		if err != nil {
			return err
		}

		if visitHeader {
			err = v.VisitNamespaces(d.srcNs, d.dstNs)
			if err != nil {
				return err
			}
		}

		if visitHeader || first {
			err = d.readProperties(v, visitHeader)
			if err != nil {
				return err
			}
		}

		ok, err := v.VisitContent()
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

func readV2Header(cr *column.Reader) (string, []string, error) {
	if !cr.NextColIs("tiny") {
		return "", nil, ErrNoV2Header
	}

	major, _, err := cr.NextIntCol()
	if err != nil || major != 2 {
		return "", nil, ErrNoV2Header
	}

	minor, _, err := cr.NextIntCol()
	if err != nil || minor < 0 {
		return "", nil, ErrNoV2Header
	}

	src, _ := cr.NextCol()

	var dst []string

	for {
		ns, ok := cr.NextCol()
		if !ok {
			break
		}

		dst = append(dst, ns)
	}

	return src, dst, nil
}

type v2Decoder struct {
	r           *column.Reader
	rep         *column.Reporter
	srcNs       string
	dstNs       []string
	escapeNames bool
}

func newV2Decoder(r io.Reader, sink diagnostic.Sink) (*v2Decoder, error) {
	cr, err := column.NewReader(r, '\t', '\t')
	if err != nil {
		return nil, err
	}

	srcNs, dstNs, err := readV2Header(cr)
	if err != nil {
		return nil, err
	}

	return &v2Decoder{
		r:     cr,
		rep:   column.NewReporter(cr, sink),
		srcNs: srcNs,
		dstNs: dstNs,
	}, nil
}

// readProperties consumes the depth 1 lines following the header. Without
// visit only the escaped-names switch is picked up.
func (d *v2Decoder) readProperties(v visitor.Visitor, visit bool) error {
	escapedNames, _ := format.EscapedNames.NameFor(format.Tiny2File)

	for {
		ok, err := d.r.NextLine(1)
		if err != nil || !ok {
			return err
		}

		if !visit {
			if !d.escapeNames && d.r.NextColIs(escapedNames) {
				d.escapeNames = true
			}

			continue
		}

		key, ok := d.r.NextCol()
		if !ok {
			err = d.rep.Error(diagnostic.CodeMissingProperty, "missing property key")
			if err != nil {
				return err
			}

			continue
		}

		value, _, err := d.r.NextColEscaped(true)
		if err != nil {
			err = d.rep.Error(diagnostic.CodeInvalidEscape, "property %s: %v", key, err)
			if err != nil {
				return err
			}

			continue
		}

		if key == escapedNames {
			d.escapeNames = true
		}

		err = v.VisitMetadata(key, value)
		if err != nil {
			return err
		}
	}
}

func (d *v2Decoder) readContent(v visitor.Visitor) error {
	for {
		ok, err := d.r.NextLine(0)
		if err != nil || !ok {
			return err
		}

		if !d.r.NextColIs("c") {
			continue
		}

		err = d.readClass(v)
		if err != nil && !errors.Is(err, errReported) {
			return err
		}
	}
}

// readClass handles c <src> <dst>... and its nested lines.
func (d *v2Decoder) readClass(v visitor.Visitor) error {
	src, ok, err := d.nextName()
	if err != nil {
		return err
	}

	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	visit, err := v.VisitClass(src)
	if err != nil || !visit {
		return err
	}

	ok, err = d.readElementHead(v, visitor.Class)
	if err != nil || !ok {
		return err
	}

	for {
		ok, err := d.r.NextLine(1)
		if err != nil || !ok {
			return err
		}

		switch {
		case d.r.NextColIs("f"):
			err = d.readMember(v, visitor.Field)
		case d.r.NextColIs("m"):
			err = d.readMember(v, visitor.Method)
		case d.r.NextColIs("c"):
			err = d.readComment(v, visitor.Class)
		}

		if err != nil && !errors.Is(err, errReported) {
			return err
		}
	}
}

// readMember handles f|m <desc> <src> <dst>... and its nested lines.
func (d *v2Decoder) readMember(v visitor.Visitor, kind visitor.ElementKind) error {
	prefix := "field"
	if kind == visitor.Method {
		prefix = "method"
	}

	desc, ok, err := d.nextName()
	if err != nil {
		return err
	}

	if !ok || desc == "" {
		return d.rep.Error(diagnostic.CodeMissingDesc, "missing %s-desc-a", prefix)
	}

	src, ok, err := d.nextName()
	if err != nil {
		return err
	}

	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing %s-name-a", prefix)
	}

	var visit bool

	if kind == visitor.Field {
		visit, err = v.VisitField(src, desc)
	} else {
		visit, err = v.VisitMethod(src, desc)
	}

	if err != nil || !visit {
		return err
	}

	if kind == visitor.Field {
		return d.readElement(v, visitor.Field)
	}

	return d.readMethod(v)
}

func (d *v2Decoder) readMethod(v visitor.Visitor) error {
	ok, err := d.readElementHead(v, visitor.Method)
	if err != nil || !ok {
		return err
	}

	for {
		ok, err := d.r.NextLine(2)
		if err != nil || !ok {
			return err
		}

		switch {
		case d.r.NextColIs("p"):
			err = d.readArg(v)
		case d.r.NextColIs("v"):
			err = d.readVar(v)
		case d.r.NextColIs("c"):
			err = d.readComment(v, visitor.Method)
		}

		if err != nil && !errors.Is(err, errReported) {
			return err
		}
	}
}

// readArg handles p <lv-index> <src> <dst>...
func (d *v2Decoder) readArg(v visitor.Visitor) error {
	lvIndex, err := d.index("parameter lv-index", 0)
	if err != nil {
		return err
	}

	src, ok, err := d.nextName()
	if err != nil {
		return err
	}

	if !ok {
		err = d.rep.Warn(diagnostic.CodeMissingName, "missing parameter name-a column")
		if err != nil {
			return err
		}
	}

	if lvIndex == -1 && src == "" {
		return nil
	}

	visit, err := v.VisitMethodArg(-1, lvIndex, src)
	if err != nil || !visit {
		return err
	}

	return d.readElement(v, visitor.MethodArg)
}

// readVar handles v <lv-index> <start-op> <lvt-index> <src> <dst>...
func (d *v2Decoder) readVar(v visitor.Visitor) error {
	lvIndex, err := d.index("variable lv-index", 0)
	if err != nil {
		return err
	}

	startOp, err := d.index("variable lv-start-offset", 0)
	if err != nil {
		return err
	}

	lvtRow, err := d.index("variable lvt-index", -1)
	if err != nil {
		return err
	}

	var src string

	if d.r.IsAtEol() {
		err = d.rep.Warn(diagnostic.CodeMissingName, "missing var-name columns")
		if err != nil {
			return err
		}
	} else {
		src, _, err = d.nextName()
		if err != nil {
			return err
		}
	}

	if lvIndex == -1 && startOp == -1 && src == "" {
		return nil
	}

	visit, err := v.VisitMethodVar(lvtRow, lvIndex, startOp, -1, src)
	if err != nil || !visit {
		return err
	}

	return d.readElement(v, visitor.MethodVar)
}

// index reads an integer column. An unparsable value is an error and skips
// the line; an absent value or one below lowest is a warning and becomes -1.
func (d *v2Decoder) index(what string, lowest int) (int, error) {
	n, ok, err := d.r.NextIntCol()
	if err != nil {
		err = d.rep.Error(diagnostic.CodeInvalidIndex, "invalid %s", what)
		if err != nil {
			return -1, err
		}

		return -1, errReported
	}

	if !ok && lowest < 0 {
		return -1, nil
	}

	if !ok || n < lowest {
		return -1, d.rep.Warn(diagnostic.CodeInvalidIndex, "missing/invalid %s", what)
	}

	return n, nil
}

// readElement reads the destination names of an element and the comments
// nested under it.
func (d *v2Decoder) readElement(v visitor.Visitor, kind visitor.ElementKind) error {
	ok, err := d.readElementHead(v, kind)
	if err != nil || !ok {
		return err
	}

	for {
		ok, err := d.r.NextLine(kind.Level() + 1)
		if err != nil || !ok {
			return err
		}

		if d.r.NextColIs("c") {
			err = d.readComment(v, kind)
			if err != nil && !errors.Is(err, errReported) {
				return err
			}
		}
	}
}

// readElementHead visits the destination names left on the line and opens
// the element content.
func (d *v2Decoder) readElementHead(v visitor.Visitor, kind visitor.ElementKind) (bool, error) {
	for ns := range d.dstNs {
		name, ok, err := d.nextName()
		if err != nil {
			return false, err
		}

		if !ok {
			err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing destination name columns")
			if err != nil {
				return false, err
			}

			break
		}

		if name == "" {
			continue
		}

		err = v.VisitDstName(kind, ns, name)
		if err != nil {
			return false, err
		}
	}

	return v.VisitElementContent(kind)
}

func (d *v2Decoder) readComment(v visitor.Visitor, kind visitor.ElementKind) error {
	comment, ok, err := d.r.NextColEscaped(true)
	if err != nil {
		return d.invalidEscape(err)
	}

	if !ok {
		return d.rep.Warn(diagnostic.CodeMissingComment, "missing comment")
	}

	return v.VisitComment(kind, comment)
}

// nextName reads a name column, unescaping it when escaped-names is active.
func (d *v2Decoder) nextName() (string, bool, error) {
	name, ok, err := d.r.NextColEscaped(d.escapeNames)
	if err != nil {
		return "", false, d.invalidEscape(err)
	}

	return name, ok, nil
}

func (d *v2Decoder) invalidEscape(cause error) error {
	err := d.rep.Error(diagnostic.CodeInvalidEscape, "%v", cause)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: %w", errReported, cause)
}
