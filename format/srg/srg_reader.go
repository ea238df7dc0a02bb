package srg

import (
	"io"
	"strings"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/column"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// Read decodes an SRG or XSRG file into v. A field line carrying descriptors
// switches the decoder to XSRG for the rest of the input.
func Read(r io.Reader, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	cr, err := column.NewReader(r, '\t', ' ')
	if err != nil {
		return err
	}

	d := &srgDecoder{
		r:      cr,
		rep:    column.NewReporter(cr, sink),
		format: format.SrgFile,
	}

	return pass.Run(cr, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
		ok, err := pass.Header(v, srcNamespace, dstNamespace)
		if err != nil || !ok {
			return err
		}

		return d.readContent(v)
	})
}

type srgDecoder struct {
	r      *column.Reader
	rep    *column.Reporter
	format format.Format

	lastClass    string
	hasLastClass bool
	visitLast    bool
}

// readContent starts on the current line; the reader is positioned on the
// first line of the input before any NextLine call.
func (d *srgDecoder) readContent(v visitor.Visitor) error {
	d.lastClass, d.hasLastClass, d.visitLast = "", false, false

	for {
		var err error

		switch {
		case d.r.NextColIs("CL:"):
			err = d.readClass(v)
		case d.r.NextColIs("MD:"):
			err = d.readMember(v, visitor.Method)
		case d.r.NextColIs("FD:"):
			err = d.readMember(v, visitor.Field)
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

// readClass handles CL: <src> <dst>.
func (d *srgDecoder) readClass(v visitor.Visitor) error {
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
		if err != nil {
			return err
		}
	} else {
		err = v.VisitDstName(visitor.Class, 0, dst)
		if err != nil {
			return err
		}
	}

	d.visitLast, err = v.VisitElementContent(visitor.Class)

	return err
}

// readMember handles
//
//	MD: <cls-a>/<name-a> <desc-a> <cls-b>/<name-b> <desc-b>
//	FD: <cls-a>/<name-a> <cls-b>/<name-b>
//	FD: <cls-a>/<name-a> <desc-a> <cls-b>/<name-b> <desc-b>   (XSRG)
func (d *srgDecoder) readMember(v visitor.Visitor, kind visitor.ElementKind) error {
	src, ok := d.r.NextCol()
	if !ok {
		return d.rep.Error(diagnostic.CodeMissingName, "missing class/name a")
	}

	srcSep := strings.LastIndexByte(src, '/')
	if srcSep <= 0 || srcSep == len(src)-1 {
		return d.rep.Error(diagnostic.CodeInvalidName, "invalid class/name a")
	}

	var (
		cols    [3]string
		present [3]bool
	)

	for i := range cols {
		cols[i], present[i] = d.r.NextCol()
	}

	if kind == visitor.Field && present[1] && present[2] {
		d.format = format.XsrgFile
	}

	var srcDesc, dstName, dstDesc string

	dstPresent := present[0]

	if kind == visitor.Method || d.format == format.XsrgFile {
		srcDesc = cols[0]
		if srcDesc == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing desc a")
			if err != nil {
				return err
			}
		}

		dstName, dstPresent = cols[1], present[1]

		dstDesc = cols[2]
		if dstDesc == "" {
			err := d.rep.Warn(diagnostic.CodeMissingDesc, "missing desc b")
			if err != nil {
				return err
			}
		}
	} else {
		dstName = cols[0]
	}

	dstSep := -1
	dstValid := false

	switch {
	case !dstPresent:
		err := d.rep.Warn(diagnostic.CodeMissingDstName, "missing class/name b")
		if err != nil {
			return err
		}
	default:
		dstSep = strings.LastIndexByte(dstName, '/')
		if dstSep <= 0 || dstSep == len(dstName)-1 {
			err := d.rep.Warn(diagnostic.CodeInvalidName, "invalid class/name b")
			if err != nil {
				return err
			}
		} else {
			dstValid = true
		}
	}

	owner := src[:srcSep]
	if !d.hasLastClass || owner != d.lastClass {
		d.lastClass, d.hasLastClass = owner, true

		err := d.openClass(v, owner, dstName, dstSep, dstValid)
		if err != nil {
			return err
		}
	}

	if !d.visitLast {
		return nil
	}

	var (
		visit bool
		err   error
	)

	if kind == visitor.Method {
		visit, err = v.VisitMethod(src[srcSep+1:], srcDesc)
	} else {
		visit, err = v.VisitField(src[srcSep+1:], srcDesc)
	}

	if err != nil || !visit {
		return err
	}

	if dstValid {
		err = v.VisitDstName(kind, 0, dstName[dstSep+1:])
		if err != nil {
			return err
		}
	}

	if dstDesc != "" {
		err = v.VisitDstDesc(kind, 0, dstDesc)
		if err != nil {
			return err
		}
	}

	_, err = v.VisitElementContent(kind)

	return err
}

func (d *srgDecoder) openClass(v visitor.Visitor, owner, dstName string, dstSep int, dstValid bool) error {
	visit, err := v.VisitClass(owner)
	if err != nil {
		return err
	}

	d.visitLast = visit
	if !visit {
		return nil
	}

	if dstValid {
		err = v.VisitDstName(visitor.Class, 0, dstName[:dstSep])
		if err != nil {
			return err
		}
	}

	d.visitLast, err = v.VisitElementContent(visitor.Class)

	return err
}
