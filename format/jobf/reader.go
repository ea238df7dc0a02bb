package jobf

import (
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/internal/column"
	"mapping-io/internal/common"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

const assign = " = "

// Read decodes a JOBF file into v.
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
		var err error

		switch {
		case d.r.NextColIs("p"):
			err = d.readPackage(v)
		case d.r.NextColIs("c"):
			err = d.readClass(v)
		case d.r.NextColIs("f"):
			err = d.readMember(v, visitor.Field)
		case d.r.NextColIs("m"):
			err = d.readMember(v, visitor.Method)
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

// split returns both sides of "<src> = <dst>"; ok is false when the source is
// unusable and the line has been reported.
func (d *decoder) split(what string) (src, dst string, ok bool, err error) {
	rest, _ := d.r.NextCols()

	src, dst, found := strings.Cut(rest, assign)
	if !found {
		return "", "", false, d.rep.Error(diagnostic.CodeMalformedLine, "missing ' = ' separator")
	}

	if src == "" {
		return "", "", false, d.rep.Error(diagnostic.CodeMissingName, "missing %s-name-a", what)
	}

	if dst == "" {
		err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing %s-name-b", what)
	}

	return src, dst, true, err
}

// readPackage handles p <src> = <dst>.
func (d *decoder) readPackage(v visitor.Visitor) error {
	src, dst, ok, err := d.split("package")
	if err != nil || !ok {
		return err
	}

	visit, err := v.VisitPackage(common.InternalName(src))
	if err != nil || !visit {
		return err
	}

	_, err = enter(v, visitor.Package, common.InternalName(dst))

	return err
}

// readClass handles c <src> = <dst-simple-name>.
func (d *decoder) readClass(v visitor.Visitor) error {
	src, dst, ok, err := d.split("class")
	if err != nil || !ok {
		return err
	}

	src = common.InternalName(src)
	if dst != "" {
		dst = common.PackageOf(src) + dst
	}

	d.lastClass, d.hasLastClass = src, true

	d.visitLast, err = v.VisitClass(src)
	if err != nil || !d.visitLast {
		return err
	}

	d.visitLast, err = enter(v, visitor.Class, dst)

	return err
}

// readMember handles f <owner>.<name>:<desc> = <dst> and
// m <owner>.<name><desc> = <dst>.
func (d *decoder) readMember(v visitor.Visitor, kind visitor.ElementKind) error {
	what := "field"
	if kind == visitor.Method {
		what = "method"
	}

	src, dst, ok, err := d.split(what)
	if err != nil || !ok {
		return err
	}

	var qualified, desc string

	if kind == visitor.Field {
		qualified, desc, ok = strings.Cut(src, ":")
	} else if i := strings.IndexByte(src, '('); i >= 0 {
		qualified, desc, ok = src[:i], src[i:], true
	} else {
		ok = false
	}

	dot := strings.LastIndexByte(qualified, '.')
	if !ok || desc == "" || dot <= 0 || dot == len(qualified)-1 {
		return d.rep.Error(diagnostic.CodeMalformedLine, "invalid %s %q", what, src)
	}

	owner := common.InternalName(qualified[:dot])
	name := qualified[dot+1:]

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

	_, err = enter(v, kind, dst)

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

func enter(v visitor.Visitor, kind visitor.ElementKind, dst string) (bool, error) {
	if dst != "" {
		err := v.VisitDstName(kind, 0, dst)
		if err != nil {
			return false, err
		}
	}

	return v.VisitElementContent(kind)
}
