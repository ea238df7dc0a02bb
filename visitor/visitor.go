package visitor

import "errors"

// ErrUnexpectedPass is returned when VisitEnd asks for another pass from a
// visitor that did not declare NeedsMultiplePasses.
var ErrUnexpectedPass = errors.New("repeated visitation requested without NeedsMultiplePasses")

// Visitor receives the decoded content of a mapping file.
type Visitor interface {
	// Flags is read once before decoding starts.
	Flags() Flags

	VisitHeader() (bool, error)
	VisitNamespaces(srcNamespace string, dstNamespaces []string) error
	VisitMetadata(key, value string) error

	VisitContent() (bool, error)
	VisitPackage(srcName string) (bool, error)
	VisitClass(srcName string) (bool, error)
	VisitField(srcName, srcDesc string) (bool, error)
	VisitMethod(srcName, srcDesc string) (bool, error)
	// VisitMethodArg opens a parameter; argPosition and lvIndex are -1 when unknown.
	VisitMethodArg(argPosition, lvIndex int, srcName string) (bool, error)
	// VisitMethodVar opens a local variable; numeric keys are -1 when unknown.
	VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, endOpIdx int, srcName string) (bool, error)

	// VisitEnd closes a pass. Returning false requests another pass over the
	// same input, which is only honoured with NeedsMultiplePasses.
	VisitEnd() (bool, error)

	// VisitDstName assigns name to the most recently opened element of kind
	// in destination namespace ns (0-based).
	VisitDstName(kind ElementKind, ns int, name string) error
	VisitDstDesc(kind ElementKind, ns int, desc string) error
	// VisitElementContent is called once the element's own data is complete,
	// before any nested element. Returning false skips the nested elements.
	VisitElementContent(kind ElementKind) (bool, error)
	VisitComment(kind ElementKind, comment string) error
}
