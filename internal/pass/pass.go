package pass

import (
	"mapping-io/tree"
	"mapping-io/visitor"
)

// ErrUnexpectedPass aliases visitor.ErrUnexpectedPass for decoders.
var ErrUnexpectedPass = visitor.ErrUnexpectedPass

// Source is the rewindable input a decoder runs over.
type Source interface {
	Mark() int
	Reset() (int, error)
	DiscardMark() error
}

// Options describes decoder traits relevant to buffering.
type Options struct {
	// MetadataInContent is set by dialects that emit metadata while decoding
	// content; visitors needing header metadata are then buffered.
	MetadataInContent bool
}

// DecodeFunc runs one complete pass (header, content) into v. It must not
// call VisitEnd. first is false on repeated passes.
type DecodeFunc func(v visitor.Visitor, first bool) error

// Buffered reports whether Run would decode into an intermediate tree for v.
func Buffered(flags visitor.Flags, opts Options) bool {
	switch {
	case flags.Any(visitor.NeedsElementUniqueness | visitor.NeedsDstFieldDesc | visitor.NeedsDstMethodDesc):
		return true
	case opts.MetadataInContent && flags.Has(visitor.NeedsHeaderMetadata):
		return true
	default:
		return false
	}
}

// Run drives decode against v according to v's flags.
//
// Buffered visitors get a single decode into a fresh tree which is then
// replayed into v. Visitors needing multiple passes get the source marked at
// its current position and rewound before every further pass. Anyone else
// gets exactly one pass, and asking for more fails with ErrUnexpectedPass.
func Run(src Source, v visitor.Visitor, opts Options, decode DecodeFunc) error {
	flags := v.Flags()

	if Buffered(flags, opts) {
		t := tree.New()

		err := decode(t, true)
		if err != nil {
			return err
		}

		_, err = t.VisitEnd()
		if err != nil {
			return err
		}

		return t.Accept(v)
	}

	marked := flags.Has(visitor.NeedsMultiplePasses)
	if marked {
		src.Mark()
	}

	for first := true; ; first = false {
		err := decode(v, first)
		if err != nil {
			return err
		}

		done, err := v.VisitEnd()
		if err != nil {
			return err
		}

		if done {
			break
		}

		if !marked {
			return ErrUnexpectedPass
		}

		_, err = src.Reset()
		if err != nil {
			return err
		}
	}

	if marked {
		return src.DiscardMark()
	}

	return nil
}

// Restart is a Source for inputs that are re-read from scratch on every pass,
// such as directories.
type Restart struct{}

func (Restart) Mark() int { return 1 }

func (Restart) Reset() (int, error) { return 1, nil }

func (Restart) DiscardMark() error { return nil }

// Header runs the header phase for dialects whose namespaces are supplied by
// the caller rather than read from the input, then opens the content phase.
// It reports whether content should be decoded.
func Header(v visitor.Visitor, srcNamespace string, dstNamespaces ...string) (bool, error) {
	ok, err := v.VisitHeader()
	if err != nil {
		return false, err
	}

	if ok {
		err = v.VisitNamespaces(srcNamespace, dstNamespaces)
		if err != nil {
			return false, err
		}
	}

	return v.VisitContent()
}
