package common

import (
	"errors"
	"strings"
)

// ErrInvalidDesc is returned for malformed JVM type descriptors.
var ErrInvalidDesc = errors.New("invalid type descriptor")

var primitiveDescs = map[string]string{
	"void":    "V",
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"short":   "S",
	"int":     "I",
	"long":    "J",
	"float":   "F",
	"double":  "D",
}

// InternalName converts a binary name (pkg.Outer$Inner) to internal form (pkg/Outer$Inner).
func InternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// BinaryName converts an internal name to its dotted form.
func BinaryName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// PackageOf returns the package part of an internal class name including the
// trailing slash, or "" for the default package.
func PackageOf(name string) string {
	return name[:strings.LastIndexByte(name, '/')+1]
}

// SimpleName returns the part of an internal class name after its package.
func SimpleName(name string) string {
	return name[strings.LastIndexByte(name, '/')+1:]
}

// TypeDesc converts a Java source type such as "int", "java.lang.String" or
// "long[][]" to a descriptor.
func TypeDesc(javaType string) string {
	var b strings.Builder

	for strings.HasSuffix(javaType, "[]") {
		javaType = javaType[:len(javaType)-2]
		b.WriteByte('[')
	}

	if d, ok := primitiveDescs[javaType]; ok {
		b.WriteString(d)
	} else {
		b.WriteByte('L')
		b.WriteString(InternalName(javaType))
		b.WriteByte(';')
	}

	return b.String()
}

// MethodDesc builds a method descriptor from Java source types.
func MethodDesc(ret string, args []string) string {
	var b strings.Builder

	b.WriteByte('(')

	for _, a := range args {
		b.WriteString(TypeDesc(a))
	}

	b.WriteByte(')')
	b.WriteString(TypeDesc(ret))

	return b.String()
}

// JavaType converts a single field descriptor to its Java source form.
func JavaType(desc string) (string, error) {
	t, rest, err := nextType(desc)
	if err != nil {
		return "", err
	}

	if rest != "" {
		return "", ErrInvalidDesc
	}

	return t, nil
}

// JavaMethodTypes splits a method descriptor into Java source argument types
// and return type.
func JavaMethodTypes(desc string) (args []string, ret string, err error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, "", ErrInvalidDesc
	}

	rest := desc[1:]

	for !strings.HasPrefix(rest, ")") {
		var t string

		t, rest, err = nextType(rest)
		if err != nil {
			return nil, "", err
		}

		args = append(args, t)
	}

	ret, err = JavaType(rest[1:])

	return args, ret, err
}

func nextType(desc string) (string, string, error) {
	dims := 0
	for dims < len(desc) && desc[dims] == '[' {
		dims++
	}

	if dims == len(desc) {
		return "", "", ErrInvalidDesc
	}

	var (
		base string
		rest string
	)

	switch c := desc[dims]; c {
	case 'L':
		end := strings.IndexByte(desc[dims:], ';')
		if end < 0 {
			return "", "", ErrInvalidDesc
		}

		base = BinaryName(desc[dims+1 : dims+end])
		rest = desc[dims+end+1:]
	default:
		for name, d := range primitiveDescs {
			if d[0] == c {
				base = name
			}
		}

		if base == "" {
			return "", "", ErrInvalidDesc
		}

		rest = desc[dims+1:]
	}

	return base + strings.Repeat("[]", dims), rest, nil
}

// MapClassNames rewrites every class name inside a field or method
// descriptor with mapName; names mapName reports unknown are kept.
func MapClassNames(desc string, mapName func(string) (string, bool)) string {
	var b strings.Builder

	for {
		start := strings.IndexByte(desc, 'L')
		if start < 0 {
			break
		}

		end := strings.IndexByte(desc[start:], ';')
		if end < 0 {
			break
		}

		b.WriteString(desc[:start+1])

		name := desc[start+1 : start+end]
		if mapped, ok := mapName(name); ok && mapped != "" {
			name = mapped
		}

		b.WriteString(name)
		b.WriteByte(';')

		desc = desc[start+end+1:]
	}

	b.WriteString(desc)

	return b.String()
}
