package recaf

import (
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// Read decodes a Recaf Simple file into v.
func Read(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, '\t', ' ')
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

	lastClass    string
	hasLastClass bool
	visitLast    bool
}

func (d *decoder) readContent(v visitor.Visitor) error {
	d.lastClass, d.hasLastClass, d.visitLast = "", false, false

	for {
		err := d.readLine(v)
		if err != nil {
			return err
		}

		ok, err := d.r.NextLine(0)
		if err != nil || !ok {
			return err
		}
	}
}

func (d *decoder) readLine(v visitor.Visitor) error {
	if d.r.HasExtraIndents() {
		return nil
	}

	first, ok := d.r.NextCol()
	if !ok || first == "" || strings.HasPrefix(first, "#") {
		return nil
	}

	owner, member, isMember := strings.Cut(first, ".")
	if !isMember {
		return d.readClass(v, first)
	}

	if owner == "" || member == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing member owner or name in %q", first)
	}

	kind := visitor.Field

	var name, desc, dst string

	if i := strings.IndexByte(member, '('); i >= 0 {
		kind = visitor.Method
		name, desc = member[:i], member[i:]
		dst, _ = d.r.NextCol()
	} else {
		name = member

		second, _ := d.r.NextCol()
		third, hasThird := d.r.NextCol()

		if hasThird {
			desc, dst = second, third
		} else {
			dst = second
		}
	}

	if name == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing member-name-a")
	}

	visit, err := d.openClass(v, owner)
	if err != nil || !visit {
		return err
	}

	if kind == visitor.Field {
		visit, err = v.VisitField(name, desc)
	} else {
		visit, err = v.VisitMethod(name, desc)
	}

	if err != nil || !visit {
		return err
	}

	_, err = d.enter(v, kind, dst)

	return err
}

// readClass handles <src> <dst>.
func (d *decoder) readClass(v visitor.Visitor, src string) error {
	dst, _ := d.r.NextCol()

	d.lastClass, d.hasLastClass = src, true

	visit, err := v.VisitClass(src)
	if err != nil || !visit {
		d.visitLast = false

		return err
	}

	d.visitLast, err = d.enter(v, visitor.Class, dst)

	return err
}

// openClass re-opens owner unless it is the class visited last.
func (d *decoder) openClass(v visitor.Visitor, owner string) (bool, error) {
	if d.hasLastClass && d.lastClass == owner {
		return d.visitLast, nil
	}

	d.lastClass, d.hasLastClass = owner, true

	visit, err := v.VisitClass(owner)
	if err == nil && visit {
		visit, err = v.VisitElementContent(visitor.Class)
	}

	d.visitLast = visit

	return visit, err
}

func (d *decoder) enter(v visitor.Visitor, kind visitor.ElementKind, dst string) (bool, error) {
	if dst == "" {
		err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing %s destination name", strings.ToLower(kind.String()))
		if err != nil {
			return false, err
		}
	} else {
		err := v.VisitDstName(kind, 0, dst)
		if err != nil {
			return false, err
		}
	}

	return v.VisitElementContent(kind)
}
