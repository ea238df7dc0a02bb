package tree

import (
	"mapping-io/internal/common"
	"mapping-io/visitor"
)

// Accept replays the tree into v, repeating the replay for as long as v's
// VisitEnd asks for another pass. Asking for another pass without
// visitor.NeedsMultiplePasses fails with visitor.ErrUnexpectedPass.
//
// Destination descriptors missing from the tree are derived from the source
// descriptor when v declares NeedsDstFieldDesc or NeedsDstMethodDesc.
func (t *Tree) Accept(v visitor.Visitor) error {
	flags := v.Flags()

	for {
		ok, err := v.VisitHeader()
		if err != nil {
			return err
		}

		if ok {
			err = t.acceptHeader(v)
			if err != nil {
				return err
			}
		}

		ok, err = v.VisitContent()
		if err != nil {
			return err
		}

		if ok {
			err = t.acceptContent(v, flags)
			if err != nil {
				return err
			}
		}

		done, err := v.VisitEnd()
		if err != nil || done {
			return err
		}

		if !flags.Has(visitor.NeedsMultiplePasses) {
			return visitor.ErrUnexpectedPass
		}
	}
}

func (t *Tree) acceptHeader(v visitor.Visitor) error {
	err := v.VisitNamespaces(t.SrcNamespace, t.DstNamespaces)
	if err != nil {
		return err
	}

	for _, m := range t.Metadata {
		err = v.VisitMetadata(m.Key, m.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) acceptContent(v visitor.Visitor, flags visitor.Flags) error {
	for _, p := range t.Packages {
		ok, err := v.VisitPackage(p.SrcName)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		err = acceptEntry(v, visitor.Package, &p.Entry)
		if err != nil {
			return err
		}
	}

	for _, c := range t.Classes {
		err := t.acceptClass(v, flags, c)
		if err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) acceptClass(v visitor.Visitor, flags visitor.Flags, c *Class) error {
	ok, err := v.VisitClass(c.SrcName)
	if err != nil || !ok {
		return err
	}

	ok, err = acceptNames(v, visitor.Class, &c.Entry)
	if err != nil || !ok {
		return err
	}

	for _, f := range c.Fields {
		err = t.acceptMember(v, visitor.Field, flags.Has(visitor.NeedsDstFieldDesc), f)
		if err != nil {
			return err
		}
	}

	for _, m := range c.Methods {
		err = t.acceptMember(v, visitor.Method, flags.Has(visitor.NeedsDstMethodDesc), m)
		if err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) acceptMember(v visitor.Visitor, kind visitor.ElementKind, deriveDesc bool, m *Member) error {
	var (
		ok  bool
		err error
	)

	if kind == visitor.Field {
		ok, err = v.VisitField(m.SrcName, m.SrcDesc)
	} else {
		ok, err = v.VisitMethod(m.SrcName, m.SrcDesc)
	}

	if err != nil || !ok {
		return err
	}

	for ns, name := range m.DstNames {
		if name == "" {
			continue
		}

		err = v.VisitDstName(kind, ns, name)
		if err != nil {
			return err
		}
	}

	for ns := range t.DstNamespaces {
		desc := m.DstDesc(ns)
		if desc == "" && deriveDesc && m.SrcDesc != "" {
			desc = t.MapDesc(m.SrcDesc, ns)
		}

		if desc == "" {
			continue
		}

		err = v.VisitDstDesc(kind, ns, desc)
		if err != nil {
			return err
		}
	}

	ok, err = v.VisitElementContent(kind)
	if err != nil || !ok {
		return err
	}

	if m.Comment != "" {
		err = v.VisitComment(kind, m.Comment)
		if err != nil {
			return err
		}
	}

	for _, a := range m.Args {
		ok, err = v.VisitMethodArg(a.ArgPosition, a.LvIndex, a.SrcName)
		if err != nil {
			return err
		}

		if ok {
			err = acceptEntry(v, visitor.MethodArg, &a.Entry)
			if err != nil {
				return err
			}
		}
	}

	for _, lv := range m.Vars {
		ok, err = v.VisitMethodVar(lv.LvtRowIndex, lv.LvIndex, lv.StartOpIdx, lv.EndOpIdx, lv.SrcName)
		if err != nil {
			return err
		}

		if ok {
			err = acceptEntry(v, visitor.MethodVar, &lv.Entry)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// acceptEntry emits names, element content and comment of a leaf element.
func acceptEntry(v visitor.Visitor, kind visitor.ElementKind, e *Entry) error {
	_, err := acceptNames(v, kind, e)

	return err
}

// acceptNames emits destination names, opens the element content and emits
// the comment. It reports whether nested elements should follow.
func acceptNames(v visitor.Visitor, kind visitor.ElementKind, e *Entry) (bool, error) {
	for ns, name := range e.DstNames {
		if name == "" {
			continue
		}

		err := v.VisitDstName(kind, ns, name)
		if err != nil {
			return false, err
		}
	}

	ok, err := v.VisitElementContent(kind)
	if err != nil || !ok {
		return false, err
	}

	if e.Comment != "" {
		err = v.VisitComment(kind, e.Comment)
		if err != nil {
			return false, err
		}
	}

	return true, nil
}

// MapDesc rewrites the class names inside a field or method descriptor to
// their names in destination namespace ns. Unmapped classes keep their
// source name.
func (t *Tree) MapDesc(desc string, ns int) string {
	return common.MapClassNames(desc, func(name string) (string, bool) {
		cls, ok := t.classIdx[name]
		if !ok {
			return "", false
		}

		return cls.DstName(ns), true
	})
}
