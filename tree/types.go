package tree

// Entry holds the names shared by every element kind.
type Entry struct {
	SrcName  string   `yaml:"src"`
	DstNames []string `yaml:"dst,omitempty"`
	Comment  string   `yaml:"comment,omitempty"`
}

// DstName returns the name in destination namespace ns, empty when unset.
func (e *Entry) DstName(ns int) string {
	if ns < 0 || ns >= len(e.DstNames) {
		return ""
	}

	return e.DstNames[ns]
}

func (e *Entry) setDstName(ns int, name string) {
	e.DstNames = grow(e.DstNames, ns)
	e.DstNames[ns] = name
}

// Package is a package rename.
type Package struct {
	Entry `yaml:",inline"`
}

// Class is a class with its members.
type Class struct {
	Entry   `yaml:",inline"`
	Fields  []*Member `yaml:"fields,omitempty"`
	Methods []*Member `yaml:"methods,omitempty"`
}

// Member is a field or method.
type Member struct {
	Entry    `yaml:",inline"`
	SrcDesc  string   `yaml:"desc,omitempty"`
	DstDescs []string `yaml:"dst_desc,omitempty"`
	Args     []*Arg   `yaml:"args,omitempty"`
	Vars     []*Var   `yaml:"vars,omitempty"`
}

// DstDesc returns the stored descriptor in destination namespace ns.
func (m *Member) DstDesc(ns int) string {
	if ns < 0 || ns >= len(m.DstDescs) {
		return ""
	}

	return m.DstDescs[ns]
}

// Arg is a method parameter.
type Arg struct {
	Entry       `yaml:",inline"`
	ArgPosition int `yaml:"arg_position"`
	LvIndex     int `yaml:"lv_index"`
}

// Var is a method local variable.
type Var struct {
	Entry       `yaml:",inline"`
	LvtRowIndex int `yaml:"lvt_row_index"`
	LvIndex     int `yaml:"lv_index"`
	StartOpIdx  int `yaml:"start_op"`
	EndOpIdx    int `yaml:"end_op"`
}

// Metadata is one header property.
type Metadata struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value,omitempty"`
}

// Stats counts the elements of a tree.
type Stats struct {
	Packages int
	Classes  int
	Fields   int
	Methods  int
	Args     int
	Vars     int
	Comments int
}

func grow(s []string, idx int) []string {
	for len(s) <= idx {
		s = append(s, "")
	}

	return s
}
