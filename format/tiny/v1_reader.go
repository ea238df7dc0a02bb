package tiny

import (
	"errors"
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ErrNoV1Header is returned for input that does not start with a Tiny v1 header.
var ErrNoV1Header = errors.New("invalid/unsupported tiny file: no tiny 1 header")

const intermediaryCounterPrefix = "# INTERMEDIARY-COUNTER "

// NamespacesV1 reads only the header of a Tiny v1 file.
func NamespacesV1(r io.Reader) (string, []string, error) {
	cr, err := column.NewReader(r, '\t', '\t')
	if err != nil {
		return "", nil, err
	}

	return readV1Header(cr)
}

// ReadV1 decodes a Tiny v1 file into v, reporting malformed lines to sink.
func ReadV1(r io.Reader, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, '\t', '\t')
	if err != nil {
		return err
	}

	srcNs, dstNs, err := readV1Header(cr)
	if err != nil {
		return err
	}

	d := &v1Decoder{
		r:          cr,
		rep:        column.NewReporter(cr, sink),
		dstNsCount: len(dstNs),
	}

	return pass.Run(cr, v, pass.Options{MetadataInContent: true}, func(v visitor.Visitor, _ bool) error {
		ok, err := v.VisitHeader()
		if err != nil {
			return err
		}

		if ok {
			err = v.VisitNamespaces(srcNs, dstNs)
			if err != nil {
				return err
			}
		}

		ok, err = v.VisitContent()
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

func readV1Header(cr *column.Reader) (string, []string, error) {
	if !cr.NextColIs("v1") {
		return "", nil, ErrNoV1Header
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

type v1Decoder struct {
	r          *column.Reader
	rep        *column.Reporter
	dstNsCount int

	lastClass    string
	hasLastClass bool
	visitLast    bool
}

func (d *v1Decoder) readContent(v visitor.Visitor) error {
	d.lastClass, d.hasLastClass, d.visitLast = "", false, false

	for {
		ok, err := d.r.NextLine(0)
		if err != nil || !ok {
			return err
		}

		switch {
		case d.r.NextColIs("CLASS"):
			err = d.readClass(v)
		case d.r.NextColIs("FIELD"):
			err = d.readMember(v, visitor.Field)
		case d.r.NextColIs("METHOD"):
			err = d.readMember(v, visitor.Method)
		default:
			err = d.readCounter(v)
		}

		if err != nil {
			return err
		}
	}
}

// readClass handles CLASS <src> <dst>...
func (d *v1Decoder) readClass(v visitor.Visitor) error {
	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	if d.hasLastClass && src == d.lastClass {
		return nil
	}

	names, ok, err := d.readDstNames()
	if err != nil || !ok {
		return err
	}

	d.lastClass, d.hasLastClass = src, true

	visit, err := v.VisitClass(src)
	if err != nil {
		return err
	}

	d.visitLast = visit
	if !visit {
		return nil
	}

	err = visitDstNames(v, visitor.Class, names)
	if err != nil {
		return err
	}

	d.visitLast, err = v.VisitElementContent(visitor.Class)

	return err
}

// readMember handles FIELD|METHOD <owner> <desc> <src> <dst>...
func (d *v1Decoder) readMember(v visitor.Visitor, kind visitor.ElementKind) error {
	owner, ok := d.r.NextCol()
	if !ok || owner == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	if !d.hasLastClass || owner != d.lastClass {
		d.lastClass, d.hasLastClass = owner, true

		visit, err := v.VisitClass(owner)
		if err != nil {
			return err
		}

		if visit {
			visit, err = v.VisitElementContent(visitor.Class)
			if err != nil {
				return err
			}
		}

		d.visitLast = visit
	}

	if !d.visitLast {
		return nil
	}

	desc, ok := d.r.NextCol()
	if !ok || desc == "" {
		return d.rep.Error(diagnostic.CodeMissingDesc, "missing %s-desc-a", strings.ToLower(kind.String()))
	}

	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing %s-name-a", strings.ToLower(kind.String()))
	}

	names, ok, err := d.readDstNames()
	if err != nil || !ok {
		return err
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

	err = visitDstNames(v, kind, names)
	if err != nil {
		return err
	}

	_, err = v.VisitElementContent(kind)

	return err
}

// readCounter handles "# INTERMEDIARY-COUNTER <kind> <n>" lines; anything
// else is ignored.
func (d *v1Decoder) readCounter(v visitor.Visitor) error {
	line, ok := d.r.NextCol()
	if !ok || !strings.HasPrefix(line, intermediaryCounterPrefix) {
		return nil
	}

	kind, value, _ := strings.Cut(line[len(intermediaryCounterPrefix):], " ")
	value, _, _ = strings.Cut(value, " ")

	var prop format.Property

	switch kind {
	case "class":
		prop = format.NextIntermediaryClass
	case "field":
		prop = format.NextIntermediaryField
	case "method":
		prop = format.NextIntermediaryMethod
	case "component":
		prop = format.NextIntermediaryComponent
	default:
		return d.rep.Info(diagnostic.CodeUnsupported, "unknown intermediary counter %q", kind)
	}

	return v.VisitMetadata(prop.ID, value)
}

// readDstNames reads one column per destination namespace. A missing column
// is reported and ok is false; empty columns stay empty.
func (d *v1Decoder) readDstNames() ([]string, bool, error) {
	names := make([]string, d.dstNsCount)

	for ns := range names {
		name, ok := d.r.NextCol()
		if !ok {
			return nil, false, d.rep.Error(diagnostic.CodeMissingDstName, "missing name-b column for namespace %d", ns)
		}

		names[ns] = name
	}

	return names, true, nil
}

func visitDstNames(v visitor.Visitor, kind visitor.ElementKind, names []string) error {
	for ns, name := range names {
		if name == "" {
			continue
		}

		err := v.VisitDstName(kind, ns, name)
		if err != nil {
			return err
		}
	}

	return nil
}
