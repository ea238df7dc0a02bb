package enigma

import (
	"cmp"
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// Read decodes an Enigma file into v.
func Read(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	d, err := newDecoder(r, sink)
	if err != nil {
		return err
	}

	return pass.Run(d.r, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
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
}

func newDecoder(r io.Reader, sink diagnostic.Sink) (*decoder, error) {
	cr, err := column.NewReader(r, '\t', ' ')
	if err != nil {
		return nil, err
	}

	return &decoder{r: cr, rep: column.NewReporter(cr, sink)}, nil
}

func (d *decoder) readContent(v visitor.Visitor) error {
	for first := true; ; first = false {
		if !first {
			ok, err := d.r.NextLine(0)
			if err != nil || !ok {
				return err
			}
		}

		if d.r.HasExtraIndents() || !d.r.NextColIs("CLASS") {
			continue
		}

		err := d.readClass(v, 0, "", "")
		if err != nil {
			return err
		}
	}
}

// class tracks an open class so it can be re-opened after an inner class.
type class struct {
	src, dst string
	visit    bool
}

func (c *class) open(v visitor.Visitor) error {
	visit, err := v.VisitClass(c.src)
	if err != nil || !visit {
		c.visit = false

		return err
	}

	if c.dst != "" {
		err = v.VisitDstName(visitor.Class, 0, c.dst)
		if err != nil {
			return err
		}
	}

	c.visit, err = v.VisitElementContent(visitor.Class)

	return err
}

// readClass handles CLASS <src> [<dst>] at the given indent and its nested
// lines. Inner class names are joined to the outer names with '$'.
func (d *decoder) readClass(v visitor.Visitor, indent int, outerSrc, outerDst string) error {
	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class-name-a")
	}

	dst, _ := d.r.NextCol()

	if outerSrc != "" {
		if outerDst != "" || dst != "" {
			dst = cmp.Or(outerDst, outerSrc) + "$" + cmp.Or(dst, src)
		}

		src = outerSrc + "$" + src
	}

	c := &class{src: src, dst: dst}

	err := c.open(v)
	if err != nil {
		return err
	}

	var (
		comment  commentBuf
		reopen   bool
		children = indent + 1
	)

	for {
		ok, err := d.r.NextLine(children)
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		if d.r.HasExtraIndents() {
			continue
		}

		if d.r.NextColIs("CLASS") {
			err = comment.flush(v, visitor.Class, c.visit)
			if err != nil {
				return err
			}

			err = d.readClass(v, children, src, dst)
			if err != nil {
				return err
			}

			reopen = true

			continue
		}

		if reopen {
			reopen = false

			err = c.open(v)
			if err != nil {
				return err
			}
		}

		if !c.visit {
			continue
		}

		switch {
		case d.r.NextColIs("COMMENT"):
			comment.add(d.r)
		case d.r.NextColIs("FIELD"):
			err = comment.flush(v, visitor.Class, true)
			if err == nil {
				err = d.readMember(v, visitor.Field, children)
			}
		case d.r.NextColIs("METHOD"):
			err = comment.flush(v, visitor.Class, true)
			if err == nil {
				err = d.readMember(v, visitor.Method, children)
			}
		}

		if err != nil {
			return err
		}
	}

	return comment.flush(v, visitor.Class, c.visit && !reopen)
}

// readMember handles FIELD|METHOD <src> [<dst>] <desc> and its nested lines.
func (d *decoder) readMember(v visitor.Visitor, kind visitor.ElementKind, indent int) error {
	src, ok := d.r.NextCol()
	if !ok || src == "" {
		return d.rep.Error(diagnostic.CodeMissingName, "missing member-name-a")
	}

	first, hasFirst := d.r.NextCol()
	second, hasSecond := d.r.NextCol()

	var dst, desc string

	switch {
	case !hasFirst:
		err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing member-desc-a")
		if err != nil {
			return err
		}
	case !hasSecond:
		desc = first
	default:
		dst, desc = first, second

		if dst == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing member-name-b")
			if err != nil {
				return err
			}
		}

		if desc == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing member-desc-a")
			if err != nil {
				return err
			}
		}
	}

	var (
		visit bool
		err   error
	)

	if kind == visitor.Field {
		visit, err = v.VisitField(src, desc)
	} else {
		visit, err = v.VisitMethod(src, desc)
	}

	if err != nil || !visit {
		return err
	}

	visit, err = enter(v, kind, dst)
	if err != nil || !visit {
		return err
	}

	var comment commentBuf

	for {
		ok, err := d.r.NextLine(indent + 1)
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		if d.r.HasExtraIndents() {
			continue
		}

		switch {
		case d.r.NextColIs("COMMENT"):
			comment.add(d.r)
		case kind == visitor.Method && d.r.NextColIs("ARG"):
			err = comment.flush(v, kind, true)
			if err == nil {
				err = d.readArg(v, indent+1)
			}
		}

		if err != nil {
			return err
		}
	}

	return comment.flush(v, kind, true)
}

// readArg handles ARG <lv-index> [<dst>] and its comments.
func (d *decoder) readArg(v visitor.Visitor, indent int) error {
	lvIndex, ok, err := d.r.NextIntCol()
	if err != nil || !ok || lvIndex < 0 {
		return d.rep.Error(diagnostic.CodeInvalidIndex, "missing/invalid parameter lv-index")
	}

	dst, _ := d.r.NextCol()
	if dst == "" {
		err = d.rep.Warn(diagnostic.CodeMissingDstName, "missing parameter name-b")
		if err != nil {
			return err
		}
	}

	visit, err := v.VisitMethodArg(-1, lvIndex, "")
	if err != nil || !visit {
		return err
	}

	visit, err = enter(v, visitor.MethodArg, dst)
	if err != nil || !visit {
		return err
	}

	var comment commentBuf

	for {
		ok, err := d.r.NextLine(indent + 1)
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		if !d.r.HasExtraIndents() && d.r.NextColIs("COMMENT") {
			comment.add(d.r)
		}
	}

	return comment.flush(v, visitor.MethodArg, true)
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

// commentBuf joins consecutive COMMENT lines of one element.
type commentBuf struct {
	lines []string
}

func (c *commentBuf) add(r *column.Reader) {
	text, _ := r.NextCols()
	c.lines = append(c.lines, text)
}

// flush visits the collected comment if visit is set and resets the buffer.
func (c *commentBuf) flush(v visitor.Visitor, kind visitor.ElementKind, visit bool) error {
	if len(c.lines) == 0 {
		return nil
	}

	text := strings.Join(c.lines, "\n")
	c.lines = c.lines[:0]

	if !visit {
		return nil
	}

	return v.VisitComment(kind, text)
}
