package visitor

// Flags is the set of capabilities a visitor requires from its input.
type Flags int

const (
	NeedsElementUniqueness Flags = 1 << iota // every element visited at most once per pass
	NeedsHeaderMetadata                      // all metadata visited before content
	NeedsSrcFieldDesc                        // source field descriptors must be present
	NeedsSrcMethodDesc                       // source method descriptors must be present
	NeedsDstFieldDesc                        // destination field descriptors via VisitDstDesc
	NeedsDstMethodDesc                       // destination method descriptors via VisitDstDesc
	NeedsMultiplePasses                      // VisitEnd may return false to replay the input

	FlagsNone Flags = 0 // no requirements
)

// Has reports whether all bits of want are set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// Any reports whether at least one bit of want is set.
func (f Flags) Any(want Flags) bool {
	return f&want != 0
}
