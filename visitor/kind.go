package visitor

//go:generate go tool stringer -type=ElementKind -output=kind_string.go

// ElementKind identifies the type of element a call refers to.
type ElementKind int

const (
	_ ElementKind = iota // zero value is invalid

	Package
	Class
	Field
	Method
	MethodArg
	MethodVar
)

// Level returns the nesting depth of the kind: 0 for packages and classes,
// 1 for members, 2 for method arguments and variables.
func (k ElementKind) Level() int {
	switch k {
	default:
		return 0
	case Field, Method:
		return 1
	case MethodArg, MethodVar:
		return 2
	}
}

// IsMember reports whether k is a field or method.
func (k ElementKind) IsMember() bool {
	return k == Field || k == Method
}
