package proguard

import (
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/internal/column"
	"mapping-io/internal/common"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

const arrow = " -> "

// Read decodes a ProGuard mapping into v.
func Read(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, ' ', ' ')
	if err != nil {
		return err
	}

	d := &decoder{r: cr, rep: column.NewReporter(cr, sink)}

	return pass.Run(cr, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
		ok, err := pass.Header(v, srcNamespace, dstNamespace)
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

type decoder struct {
	r   *column.Reader
	rep *column.Reporter

	inClass    bool
	visitClass bool
}

func (d *decoder) readContent(v visitor.Visitor) error {
	d.inClass, d.visitClass = false, false

	for {
		member := d.r.HasExtraIndents()
		line, _ := d.r.NextCols()
		line = strings.TrimSpace(line)

		var err error

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case member:
			err = d.readMember(v, line)
		default:
			err = d.readClass(v, line)
		}

		if err != nil {
			return err
		}

		ok, err := d.r.NextLine(0)
		if err != nil || !ok {
			return err
		}
	}
}

// readClass handles <src> -> <dst>:
func (d *decoder) readClass(v visitor.Visitor, line string) error {
	d.inClass, d.visitClass = false, false

	src, dst, ok := strings.Cut(line, arrow)
	if !ok || !strings.HasSuffix(dst, ":") {
		return d.rep.Error(diagnostic.CodeMalformedLine, "invalid class line %q", line)
	}

	src = strings.TrimSpace(src)
	dst = strings.TrimSpace(strings.TrimSuffix(dst, ":"))

	if src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	d.inClass = true

	visit, err := v.VisitClass(common.InternalName(src))
	if err != nil || !visit {
		return err
	}

	if dst != "" {
		err = v.VisitDstName(visitor.Class, 0, common.InternalName(dst))
		if err != nil {
			return err
		}
	}

	d.visitClass, err = v.VisitElementContent(visitor.Class)

	return err
}

// readMember handles [a:b:]<type> <name>[(<args>)[:c[:d]]] -> <dst>.
func (d *decoder) readMember(v visitor.Visitor, line string) error {
	if !d.inClass {
		return d.rep.Error(diagnostic.CodeMalformedLine, "member line outside of a class")
	}

	if !d.visitClass {
		return nil
	}

	decl, dst, ok := strings.Cut(line, arrow)
	if !ok {
		return d.rep.Error(diagnostic.CodeMalformedLine, "invalid member line %q", line)
	}

	dst = strings.TrimSpace(dst)
	decl = strings.TrimLeft(decl, "0123456789:")

	typ, name, ok := strings.Cut(strings.TrimSpace(decl), " ")
	if !ok || typ == "" || name == "" {
		return d.rep.Error(diagnostic.CodeMalformedLine, "invalid member line %q", line)
	}

	kind := visitor.Field
	desc := common.TypeDesc(typ)

	if open := strings.IndexByte(name, '('); open >= 0 {
		end := strings.IndexByte(name, ')')
		if end < open {
			return d.rep.Error(diagnostic.CodeMalformedLine, "invalid method line %q", line)
		}

		var args []string
		if list := name[open+1 : end]; list != "" {
			args = strings.Split(list, ",")
		}

		kind = visitor.Method
		desc = common.MethodDesc(typ, args)
		name = name[:open]
	}

	// Inlined members of other classes, such as Other.name(...).
	if strings.Contains(name, ".") {
		return nil
	}

	var (
		visit bool
		err   error
	)

	if kind == visitor.Field {
		visit, err = v.VisitField(name, desc)
	} else {
		visit, err = v.VisitMethod(name, desc)
	}

	if err != nil || !visit {
		return err
	}

	if dst != "" {
		err = v.VisitDstName(kind, 0, dst)
		if err != nil {
			return err
		}
	} else {
		err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing member-name-b")
		if err != nil {
			return err
		}
	}

	_, err = v.VisitElementContent(kind)

	return err
}
