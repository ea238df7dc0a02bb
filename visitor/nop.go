package visitor

// Nop implements Visitor by doing nothing. Embed it to override only the
// calls of interest.
//
// Element-opening calls return true unless Prune is set.
type Nop struct {
	Prune bool
}

var _ Visitor = Nop{}

func (Nop) Flags() Flags { return FlagsNone }

func (Nop) VisitHeader() (bool, error) { return true, nil }

func (Nop) VisitNamespaces(string, []string) error { return nil }

func (Nop) VisitMetadata(string, string) error { return nil }

func (Nop) VisitContent() (bool, error) { return true, nil }

func (n Nop) VisitPackage(string) (bool, error) { return !n.Prune, nil }

func (n Nop) VisitClass(string) (bool, error) { return !n.Prune, nil }

func (n Nop) VisitField(string, string) (bool, error) { return !n.Prune, nil }

func (n Nop) VisitMethod(string, string) (bool, error) { return !n.Prune, nil }

func (n Nop) VisitMethodArg(int, int, string) (bool, error) { return !n.Prune, nil }

func (n Nop) VisitMethodVar(int, int, int, int, string) (bool, error) { return !n.Prune, nil }

func (Nop) VisitEnd() (bool, error) { return true, nil }

func (Nop) VisitDstName(ElementKind, int, string) error { return nil }

func (Nop) VisitDstDesc(ElementKind, int, string) error { return nil }

func (n Nop) VisitElementContent(ElementKind) (bool, error) { return !n.Prune, nil }

func (Nop) VisitComment(ElementKind, string) error { return nil }
