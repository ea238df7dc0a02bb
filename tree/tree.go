package tree

import (
	"fmt"

	"mapping-io/visitor"
)

// Tree is an in-memory mapping aggregate. The zero value is not usable; call New.
type Tree struct {
	SrcNamespace  string     `yaml:"src_namespace"`
	DstNamespaces []string   `yaml:"dst_namespaces"`
	Metadata      []Metadata `yaml:"metadata,omitempty"`
	Packages      []*Package `yaml:"packages,omitempty"`
	Classes       []*Class   `yaml:"classes,omitempty"`

	packageIdx map[string]*Package
	classIdx   map[string]*Class

	curPackage *Package
	curClass   *Class
	curMember  *Member
	curArg     *Arg
	curVar     *Var
}

var _ visitor.Visitor = (*Tree)(nil)

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		packageIdx: make(map[string]*Package),
		classIdx:   make(map[string]*Class),
	}
}

// Class returns the class with source name srcName.
func (t *Tree) Class(srcName string) (*Class, bool) {
	c, ok := t.classIdx[srcName]

	return c, ok
}

// Package returns the package with source name srcName.
func (t *Tree) Package(srcName string) (*Package, bool) {
	p, ok := t.packageIdx[srcName]

	return p, ok
}

// Field returns the field matching name and, when non-empty, desc.
func (c *Class) Field(name, desc string) (*Member, bool) {
	m := findMember(c.Fields, name, desc)

	return m, m != nil
}

// Method returns the method matching name and, when non-empty, desc.
func (c *Class) Method(name, desc string) (*Member, bool) {
	m := findMember(c.Methods, name, desc)

	return m, m != nil
}

// Stats counts the elements held by the tree.
func (t *Tree) Stats() Stats {
	s := Stats{Packages: len(t.Packages), Classes: len(t.Classes)}

	count := func(e *Entry) {
		if e.Comment != "" {
			s.Comments++
		}
	}

	for _, c := range t.Classes {
		count(&c.Entry)

		s.Fields += len(c.Fields)
		s.Methods += len(c.Methods)

		for _, m := range append(append([]*Member{}, c.Fields...), c.Methods...) {
			count(&m.Entry)

			s.Args += len(m.Args)
			s.Vars += len(m.Vars)

			for _, a := range m.Args {
				count(&a.Entry)
			}

			for _, v := range m.Vars {
				count(&v.Entry)
			}
		}
	}

	return s
}

func (t *Tree) Flags() visitor.Flags {
	return visitor.FlagsNone
}

func (t *Tree) VisitHeader() (bool, error) {
	return true, nil
}

func (t *Tree) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	t.SrcNamespace = srcNamespace
	t.DstNamespaces = append([]string(nil), dstNamespaces...)

	return nil
}

func (t *Tree) VisitMetadata(key, value string) error {
	for _, m := range t.Metadata {
		if m.Key == key && m.Value == value {
			return nil
		}
	}

	t.Metadata = append(t.Metadata, Metadata{Key: key, Value: value})

	return nil
}

func (t *Tree) VisitContent() (bool, error) {
	return true, nil
}

func (t *Tree) VisitPackage(srcName string) (bool, error) {
	p, ok := t.packageIdx[srcName]
	if !ok {
		p = &Package{Entry: Entry{SrcName: srcName}}
		t.packageIdx[srcName] = p
		t.Packages = append(t.Packages, p)
	}

	t.curPackage = p

	return true, nil
}

func (t *Tree) VisitClass(srcName string) (bool, error) {
	c, ok := t.classIdx[srcName]
	if !ok {
		c = &Class{Entry: Entry{SrcName: srcName}}
		t.classIdx[srcName] = c
		t.Classes = append(t.Classes, c)
	}

	t.curClass = c
	t.curMember, t.curArg, t.curVar = nil, nil, nil

	return true, nil
}

func (t *Tree) VisitField(srcName, srcDesc string) (bool, error) {
	if t.curClass == nil {
		return false, fmt.Errorf("field %s visited outside of a class", srcName)
	}

	t.curMember = upsertMember(&t.curClass.Fields, srcName, srcDesc)
	t.curArg, t.curVar = nil, nil

	return true, nil
}

func (t *Tree) VisitMethod(srcName, srcDesc string) (bool, error) {
	if t.curClass == nil {
		return false, fmt.Errorf("method %s visited outside of a class", srcName)
	}

	t.curMember = upsertMember(&t.curClass.Methods, srcName, srcDesc)
	t.curArg, t.curVar = nil, nil

	return true, nil
}

func (t *Tree) VisitMethodArg(argPosition, lvIndex int, srcName string) (bool, error) {
	if t.curMember == nil {
		return false, fmt.Errorf("method arg visited outside of a method")
	}

	m := t.curMember

	for _, a := range m.Args {
		if argMatches(a, argPosition, lvIndex, srcName) {
			if a.ArgPosition < 0 {
				a.ArgPosition = argPosition
			}

			if a.LvIndex < 0 {
				a.LvIndex = lvIndex
			}

			if srcName != "" {
				a.SrcName = srcName
			}

			t.curArg = a

			return true, nil
		}
	}

	a := &Arg{Entry: Entry{SrcName: srcName}, ArgPosition: argPosition, LvIndex: lvIndex}
	m.Args = append(m.Args, a)
	t.curArg = a

	return true, nil
}

func (t *Tree) VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, endOpIdx int, srcName string) (bool, error) {
	if t.curMember == nil {
		return false, fmt.Errorf("method var visited outside of a method")
	}

	m := t.curMember

	for _, v := range m.Vars {
		if varMatches(v, lvtRowIndex, lvIndex, startOpIdx, srcName) {
			if v.LvtRowIndex < 0 {
				v.LvtRowIndex = lvtRowIndex
			}

			if v.StartOpIdx < 0 {
				v.StartOpIdx = startOpIdx
			}

			if v.EndOpIdx < 0 {
				v.EndOpIdx = endOpIdx
			}

			if srcName != "" {
				v.SrcName = srcName
			}

			t.curVar = v

			return true, nil
		}
	}

	v := &Var{
		Entry:       Entry{SrcName: srcName},
		LvtRowIndex: lvtRowIndex,
		LvIndex:     lvIndex,
		StartOpIdx:  startOpIdx,
		EndOpIdx:    endOpIdx,
	}
	m.Vars = append(m.Vars, v)
	t.curVar = v

	return true, nil
}

func (t *Tree) VisitEnd() (bool, error) {
	t.curPackage, t.curClass, t.curMember, t.curArg, t.curVar = nil, nil, nil, nil, nil

	return true, nil
}

func (t *Tree) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
	if ns < 0 {
		return fmt.Errorf("negative namespace %d", ns)
	}

	e := t.entry(kind)
	if e == nil {
		return fmt.Errorf("destination name for %s without an open %s", name, kind)
	}

	e.setDstName(ns, name)

	return nil
}

func (t *Tree) VisitDstDesc(kind visitor.ElementKind, ns int, desc string) error {
	if !kind.IsMember() || t.curMember == nil || desc == "" {
		return nil
	}

	t.curMember.DstDescs = grow(t.curMember.DstDescs, ns)
	t.curMember.DstDescs[ns] = desc

	return nil
}

func (t *Tree) VisitElementContent(visitor.ElementKind) (bool, error) {
	return true, nil
}

func (t *Tree) VisitComment(kind visitor.ElementKind, comment string) error {
	if e := t.entry(kind); e != nil {
		e.Comment = comment
	}

	return nil
}

func (t *Tree) entry(kind visitor.ElementKind) *Entry {
	switch kind {
	case visitor.Package:
		if t.curPackage != nil {
			return &t.curPackage.Entry
		}
	case visitor.Class:
		if t.curClass != nil {
			return &t.curClass.Entry
		}
	case visitor.Field, visitor.Method:
		if t.curMember != nil {
			return &t.curMember.Entry
		}
	case visitor.MethodArg:
		if t.curArg != nil {
			return &t.curArg.Entry
		}
	case visitor.MethodVar:
		if t.curVar != nil {
			return &t.curVar.Entry
		}
	}

	return nil
}

// findMember prefers an exact name and descriptor match and falls back to a
// member whose descriptor is unknown on either side.
func findMember(members []*Member, name, desc string) *Member {
	var loose *Member

	for _, m := range members {
		if m.SrcName != name {
			continue
		}

		if m.SrcDesc == desc {
			return m
		}

		if loose == nil && (m.SrcDesc == "" || desc == "") {
			loose = m
		}
	}

	return loose
}

func upsertMember(members *[]*Member, name, desc string) *Member {
	if m := findMember(*members, name, desc); m != nil {
		if m.SrcDesc == "" {
			m.SrcDesc = desc
		}

		return m
	}

	m := &Member{Entry: Entry{SrcName: name}, SrcDesc: desc}
	*members = append(*members, m)

	return m
}

func argMatches(a *Arg, argPosition, lvIndex int, srcName string) bool {
	switch {
	case argPosition >= 0 && a.ArgPosition == argPosition:
		return true
	case lvIndex >= 0 && a.LvIndex == lvIndex:
		return true
	case argPosition < 0 && lvIndex < 0:
		return srcName != "" && a.SrcName == srcName
	default:
		return false
	}
}

func varMatches(v *Var, lvtRowIndex, lvIndex, startOpIdx int, srcName string) bool {
	switch {
	case lvtRowIndex >= 0 && v.LvtRowIndex >= 0:
		return v.LvtRowIndex == lvtRowIndex
	case lvIndex >= 0 && v.LvIndex == lvIndex:
		return startOpIdx < 0 || v.StartOpIdx < 0 || v.StartOpIdx == startOpIdx
	case lvIndex < 0 && startOpIdx < 0:
		return srcName != "" && v.SrcName == srcName
	default:
		return false
	}
}
