package tsrg

import (
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

const tsrg2Magic = "tsrg2"

// Namespaces returns the namespaces declared by a TSRG2 header, or the
// fallback pair for TSRG and CSRG input.
func Namespaces(r io.Reader) (string, []string, error) {
	cr, err := column.NewReader(r, '\t', ' ')
	if err != nil {
		return "", nil, err
	}

	if !cr.NextColIs(tsrg2Magic) {
		return format.SrcNamespaceFallback, []string{format.DstNamespaceFallback}, nil
	}

	src, dst := readNamespaces(cr)

	return src, dst, nil
}

// Read decodes a TSRG, TSRG2 or CSRG file into v. srcNamespace and
// dstNamespace are used unless the input carries a TSRG2 header.
func Read(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, '\t', ' ')
	if err != nil {
		return err
	}

	d := &decoder{
		r:      cr,
		rep:    column.NewReporter(cr, sink),
		format: format.TsrgFile,
	}

	srcNs, dstNs := srcNamespace, []string{dstNamespace}

	if cr.NextColIs(tsrg2Magic) {
		d.format = format.Tsrg2File
		srcNs, dstNs = readNamespaces(cr)

		_, err = cr.NextLine(0)
		if err != nil {
			return err
		}
	}

	d.dstNsCount = len(dstNs)

	return pass.Run(cr, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
		ok, err := pass.Header(v, srcNs, dstNs...)
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

func readNamespaces(cr *column.Reader) (string, []string) {
	src, _ := cr.NextCol()

	var dst []string

	for {
		ns, ok := cr.NextCol()
		if !ok {
			return src, dst
		}

		dst = append(dst, ns)
	}
}

type decoder struct {
	r          *column.Reader
	rep        *column.Reporter
	format     format.Format
	dstNsCount int

	lastClass    string
	hasLastClass bool
	visitLast    bool
}

func (d *decoder) readContent(v visitor.Visitor) error {
	d.lastClass, d.hasLastClass, d.visitLast = "", false, false

	for {
		err := d.readTopLevel(v)
		if err != nil {
			return err
		}

		ok, err := d.r.NextLine(0)
		if err != nil || !ok {
			return err
		}
	}
}

// readTopLevel handles one unindented line: a CSRG member line, or a class
// line followed by its indented members.
func (d *decoder) readTopLevel(v visitor.Visitor) error {
	if d.r.HasExtraIndents() {
		return nil
	}

	d.r.Mark()

	line, _ := d.r.NextCols()
	if line == "" && d.r.IsAtEOF() {
		return d.r.DiscardMark()
	}

	_, err := d.r.Reset()
	if err != nil {
		return err
	}

	err = d.r.DiscardMark()
	if err != nil {
		return err
	}

	parts := splitKeepSpaces(line)
	if d.format != format.Tsrg2File && len(parts) >= 4 && !strings.HasPrefix(parts[3], "#") {
		d.format = format.CsrgFile

		return d.readCsrgMember(v, parts)
	}

	src, ok := d.r.NextCol()
	if !ok && d.r.IsAtEOF() {
		return nil
	}

	if src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-/package-name-a")
	}

	if strings.HasSuffix(src, "/") {
		return d.rep.Warn(diagnostic.CodeUnsupported, "package mapping %s is not supported, ignoring", src)
	}

	if d.hasLastClass && src == d.lastClass {
		return nil
	}

	d.lastClass, d.hasLastClass = src, true

	d.visitLast, err = v.VisitClass(src)
	if err != nil || !d.visitLast {
		return err
	}

	d.visitLast, err = d.readClass(v)

	return err
}

// readCsrgMember handles
//
//	<cls-a> <name-a> <name-b>
//	<cls-a> <name-a> <desc-a> <name-b>
//
// parts holds the line split by splitKeepSpaces.
func (d *decoder) readCsrgMember(v visitor.Visitor, parts []string) error {
	owner := parts[0]
	if owner == "" {
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

	if len(parts) >= 6 && !strings.HasPrefix(parts[5], "#") {
		var dst string
		if len(parts) > 6 {
			dst = parts[6]
		}

		if dst == "" || strings.HasPrefix(dst, "#") {
			err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing method-name-b")
			if err != nil {
				return err
			}

			dst = ""
		}

		visit, err := v.VisitMethod(parts[2], parts[4])
		if err != nil || !visit {
			return err
		}

		return visitName(v, visitor.Method, dst)
	}

	var dst string
	if len(parts) > 4 {
		dst = parts[4]
	}

	if dst == "" || strings.HasPrefix(dst, "#") {
		return d.rep.Error(diagnostic.CodeMissingDstName, "missing field-name-b")
	}

	visit, err := v.VisitField(parts[2], "")
	if err != nil || !visit {
		return err
	}

	return visitName(v, visitor.Field, dst)
}

func (d *decoder) readClass(v visitor.Visitor) (bool, error) {
	err := d.readDstNames(v, visitor.Class, 0)
	if err != nil {
		return false, err
	}

	ok, err := v.VisitElementContent(visitor.Class)
	if err != nil || !ok {
		return false, err
	}

	for {
		ok, err := d.r.NextLine(1)
		if err != nil || !ok {
			return true, err
		}

		if d.r.HasExtraIndents() {
			continue
		}

		err = d.readMember(v)
		if err != nil {
			return false, err
		}
	}
}

// readMember handles
//
//	<name-a> <desc-a> <names-b>...   method
//	<name-a> <name-b>                TSRG field
//	<name-a> [<desc-a>] <names-b>... TSRG2 field
func (d *decoder) readMember(v visitor.Visitor) error {
	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing name-a")
	}

	arg, ok := d.r.NextCol()
	if !ok {
		return d.rep.Error(diagnostic.CodeMissingDstName, "missing desc/name-b, skipping element due to ambiguity regarding its kind")
	}

	switch {
	case strings.HasPrefix(arg, "("):
		visit, err := v.VisitMethod(src, arg)
		if err != nil || !visit {
			return err
		}

		return d.readMethod(v)
	case d.format != format.Tsrg2File:
		visit, err := v.VisitField(src, "")
		if err != nil || !visit {
			return err
		}

		if arg == "" {
			err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing field-name-b")
		} else {
			err = v.VisitDstName(visitor.Field, 0, arg)
		}

		if err != nil {
			return err
		}

		return d.readElement(v, visitor.Field, 1)
	default:
		return d.readTsrg2Field(v, src, arg)
	}
}

// readTsrg2Field resolves whether arg is the field descriptor or the first
// destination name: with a descriptor the line carries one more column than
// there are destination namespaces.
func (d *decoder) readTsrg2Field(v visitor.Visitor, src, arg string) error {
	middle := make([]string, 0, max(d.dstNsCount-1, 0))

	for range d.dstNsCount - 1 {
		name, ok := d.r.NextCol()
		if !ok {
			return d.rep.Error(diagnostic.CodeMissingDstName, "missing name columns")
		}

		if name == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing destination name")
			if err != nil {
				return err
			}
		}

		middle = append(middle, name)
	}

	last, hasLast := d.r.NextCol()

	offset := 1
	desc := ""

	if hasLast {
		offset = 0
		desc = arg

		if desc == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDesc, "empty field desc")
			if err != nil {
				return err
			}
		}
	}

	visit, err := v.VisitField(src, desc)
	if err != nil || !visit {
		return err
	}

	if !hasLast && arg != "" {
		err = v.VisitDstName(visitor.Field, 0, arg)
		if err != nil {
			return err
		}
	}

	for i, name := range middle {
		if name == "" {
			continue
		}

		err = v.VisitDstName(visitor.Field, i+offset, name)
		if err != nil {
			return err
		}
	}

	if hasLast && last != "" {
		err = v.VisitDstName(visitor.Field, d.dstNsCount-1, last)
		if err != nil {
			return err
		}
	}

	_, err = v.VisitElementContent(visitor.Field)

	return err
}

func (d *decoder) readMethod(v visitor.Visitor) error {
	err := d.readDstNames(v, visitor.Method, 0)
	if err != nil {
		return err
	}

	ok, err := v.VisitElementContent(visitor.Method)
	if err != nil || !ok {
		return err
	}

	for {
		ok, err := d.r.NextLine(2)
		if err != nil || !ok {
			return err
		}

		if d.r.HasExtraIndents() || d.r.NextColIs("static") {
			continue
		}

		err = d.readArg(v)
		if err != nil {
			return err
		}
	}
}

// readArg handles <lv-index> <name-a> <names-b>...
func (d *decoder) readArg(v visitor.Visitor) error {
	lvIndex, _, err := d.r.NextIntCol()
	if err != nil || lvIndex < 0 {
		lvIndex = -1

		err = d.rep.Warn(diagnostic.CodeInvalidIndex, "missing/invalid parameter lv-index")
		if err != nil {
			return err
		}
	}

	src, ok := d.r.NextCol()
	if !ok {
		err = d.rep.Warn(diagnostic.CodeMissingName, "missing var-name-a column")
		if err != nil {
			return err
		}
	}

	visit, err := v.VisitMethodArg(-1, lvIndex, src)
	if err != nil || !visit {
		return err
	}

	return d.readElement(v, visitor.MethodArg, 0)
}

func (d *decoder) readElement(v visitor.Visitor, kind visitor.ElementKind, offset int) error {
	err := d.readDstNames(v, kind, offset)
	if err != nil {
		return err
	}

	_, err = v.VisitElementContent(kind)

	return err
}

// readDstNames visits the destination names starting at namespace offset.
// Running out of columns is an error and ends the names.
func (d *decoder) readDstNames(v visitor.Visitor, kind visitor.ElementKind, offset int) error {
	for ns := offset; ns < d.dstNsCount; ns++ {
		name, ok := d.r.NextCol()
		if !ok {
			return d.rep.Error(diagnostic.CodeMissingDstName, "missing name columns")
		}

		if name == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing destination name")
			if err != nil {
				return err
			}

			continue
		}

		err := v.VisitDstName(kind, ns, name)
		if err != nil {
			return err
		}
	}

	return nil
}

func visitName(v visitor.Visitor, kind visitor.ElementKind, dst string) error {
	if dst != "" {
		err := v.VisitDstName(kind, 0, dst)
		if err != nil {
			return err
		}
	}

	_, err := v.VisitElementContent(kind)

	return err
}

// splitKeepSpaces splits s around every space, keeping each space as its own
// part. Runs of other characters form one part each; no part is empty.
func splitKeepSpaces(s string) []string {
	var parts []string

	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			continue
		}

		if i > start {
			parts = append(parts, s[start:i])
		}

		parts = append(parts, " ")
		start = i + 1
	}

	if start < len(s) {
		parts = append(parts, s[start:])
	}

	return parts
}
