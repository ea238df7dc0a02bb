package srg

import (
	"io"
	"strconv"

	"mapping-io/diagnostic"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ReadJam decodes a JAM file into v.
func ReadJam(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, '\t', ' ')
	if err != nil {
		return err
	}

	d := &jamDecoder{r: cr, rep: column.NewReporter(cr, sink)}

	return pass.Run(cr, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
		ok, err := pass.Header(v, srcNamespace, dstNamespace)
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

type jamDecoder struct {
	r   *column.Reader
	rep *column.Reporter

	lastClass    string
	hasLastClass bool
	visitLast    bool
}

func (d *jamDecoder) readContent(v visitor.Visitor) error {
	d.lastClass, d.hasLastClass, d.visitLast = "", false, false

	for {
		var err error

		switch {
		case d.r.NextColIs("CL"):
			err = d.readClass(v)
		case d.r.NextColIs("FD"):
			err = d.readMember(v, visitor.Field)
		case d.r.NextColIs("MD"):
			err = d.readMember(v, visitor.Method)
		case d.r.NextColIs("MP"):
			err = d.readMember(v, visitor.MethodArg)
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

// readClass handles CL <src> <dst>.
func (d *jamDecoder) readClass(v visitor.Visitor) error {
	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	if d.hasLastClass && src == d.lastClass {
		return nil
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

	dst, ok := d.r.NextCol()
	if !ok || dst == "" {
		err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing class-name-b")
	} else {
		err = v.VisitDstName(visitor.Class, 0, dst)
	}

	if err != nil {
		return err
	}

	d.visitLast, err = v.VisitElementContent(visitor.Class)

	return err
}

// readMember handles
//
//	FD|MD <cls-a> <name-a> <desc-a> <name-b>
//	MP <cls-a> <mth-name-a> <mth-desc-a> <arg-pos> [<arg-desc-a>] <name-b>
func (d *jamDecoder) readMember(v visitor.Visitor, kind visitor.ElementKind) error {
	owner, ok := d.r.NextCol()
	if !ok {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	name, ok := d.r.NextCol()
	if !ok || name == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing member-name-a")
	}

	desc, _ := d.r.NextCol()
	if desc == "" {
		err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing member-desc-a")
		if err != nil {
			return err
		}
	}

	col5, _ := d.r.NextCol()
	col6, _ := d.r.NextCol()
	col7, _ := d.r.NextCol()

	argPos := -1
	dst := col5

	if kind == visitor.MethodArg {
		if n, err := strconv.Atoi(col5); err == nil {
			argPos = n
		}

		if argPos < 0 {
			return d.rep.Error(diagnostic.CodeInvalidIndex, "invalid arg-pos-a")
		}

		dst = col6

		if col7 != "" {
			if col6 == "" {
				err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing arg-desc-a")
				if err != nil {
					return err
				}
			}

			dst = col7
		}
	}

	if dst == "" {
		return d.rep.Warn(diagnostic.CodeMissingDstName, "missing name-b")
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

	switch kind {
	case visitor.Field:
		return visitNamed(v, visitor.Field, dst, func() (bool, error) { return v.VisitField(name, desc) })
	case visitor.Method:
		return visitNamed(v, visitor.Method, dst, func() (bool, error) { return v.VisitMethod(name, desc) })
	}

	visit, err := v.VisitMethod(name, desc)
	if err != nil || !visit {
		return err
	}

	visit, err = v.VisitElementContent(visitor.Method)
	if err != nil || !visit {
		return err
	}

	return visitNamed(v, visitor.MethodArg, dst, func() (bool, error) { return v.VisitMethodArg(argPos, -1, "") })
}

// visitNamed opens an element, assigns its destination name and enters its
// content.
func visitNamed(v visitor.Visitor, kind visitor.ElementKind, dst string, open func() (bool, error)) error {
	visit, err := open()
	if err != nil || !visit {
		return err
	}

	err = v.VisitDstName(kind, 0, dst)
	if err != nil {
		return err
	}

	_, err = v.VisitElementContent(kind)

	return err
}
