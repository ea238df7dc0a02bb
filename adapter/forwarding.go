// Package adapter holds visitors that sit between a decoder and the final
// visitor and rewrite the stream on the fly.
package adapter

import "mapping-io/visitor"

// Forwarding passes every call to Next unchanged. Embed it and override the
// calls to rewrite.
type Forwarding struct {
	Next visitor.Visitor
}

var _ visitor.Visitor = Forwarding{}

func (f Forwarding) Flags() visitor.Flags { return f.Next.Flags() }

func (f Forwarding) VisitHeader() (bool, error) { return f.Next.VisitHeader() }

func (f Forwarding) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	return f.Next.VisitNamespaces(srcNamespace, dstNamespaces)
}

func (f Forwarding) VisitMetadata(key, value string) error { return f.Next.VisitMetadata(key, value) }

func (f Forwarding) VisitContent() (bool, error) { return f.Next.VisitContent() }

func (f Forwarding) VisitPackage(srcName string) (bool, error) { return f.Next.VisitPackage(srcName) }

func (f Forwarding) VisitClass(srcName string) (bool, error) { return f.Next.VisitClass(srcName) }

func (f Forwarding) VisitField(srcName, srcDesc string) (bool, error) {
	return f.Next.VisitField(srcName, srcDesc)
}

func (f Forwarding) VisitMethod(srcName, srcDesc string) (bool, error) {
	return f.Next.VisitMethod(srcName, srcDesc)
}

func (f Forwarding) VisitMethodArg(argPosition, lvIndex int, srcName string) (bool, error) {
	return f.Next.VisitMethodArg(argPosition, lvIndex, srcName)
}

func (f Forwarding) VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, endOpIdx int, srcName string) (bool, error) {
	return f.Next.VisitMethodVar(lvtRowIndex, lvIndex, startOpIdx, endOpIdx, srcName)
}

func (f Forwarding) VisitEnd() (bool, error) { return f.Next.VisitEnd() }

func (f Forwarding) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
	return f.Next.VisitDstName(kind, ns, name)
}

func (f Forwarding) VisitDstDesc(kind visitor.ElementKind, ns int, desc string) error {
	return f.Next.VisitDstDesc(kind, ns, desc)
}

func (f Forwarding) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	return f.Next.VisitElementContent(kind)
}

func (f Forwarding) VisitComment(kind visitor.ElementKind, comment string) error {
	return f.Next.VisitComment(kind, comment)
}
