package adapter

import "mapping-io/visitor"

// NsRenamer renames namespaces before forwarding them. Namespaces missing
// from the map keep their name.
type NsRenamer struct {
	Forwarding

	names map[string]string
}

var _ visitor.Visitor = (*NsRenamer)(nil)

// NewNsRenamer returns a renamer forwarding to next.
func NewNsRenamer(next visitor.Visitor, names map[string]string) *NsRenamer {
	return &NsRenamer{Forwarding: Forwarding{Next: next}, names: names}
}

func (r *NsRenamer) VisitNamespaces(srcNamespace string, dstNamespaces []string) error {
	renamed := make([]string, len(dstNamespaces))
	for i, ns := range dstNamespaces {
		renamed[i] = r.rename(ns)
	}

	return r.Next.VisitNamespaces(r.rename(srcNamespace), renamed)
}

func (r *NsRenamer) rename(ns string) string {
	if name, ok := r.names[ns]; ok {
		return name
	}

	return ns
}
