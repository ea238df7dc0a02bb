// Package writer creates encoders for every dialect that can be written.
package writer

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"mapping-io/format"
	"mapping-io/format/enigma"
	"mapping-io/format/jobf"
	"mapping-io/format/proguard"
	"mapping-io/format/recaf"
	"mapping-io/format/srg"
	"mapping-io/format/tiny"
	"mapping-io/format/tsrg"
	"mapping-io/visitor"
)

// ErrUnsupported is returned for dialects without an encoder for the
// requested target kind.
var ErrUnsupported = errors.New("format cannot be written")

// Writer is a visitor encoding what it receives. Close flushes pending
// output; closing the underlying stream stays with the caller.
type Writer interface {
	visitor.Visitor
	io.Closer
}

// New returns an encoder for a single-file dialect writing to w.
func New(w io.Writer, f format.Format) (Writer, error) {
	switch f {
	case format.TinyFile:
		return tiny.NewV1Writer(w), nil
	case format.Tiny2File:
		return tiny.NewV2Writer(w), nil
	case format.EnigmaFile:
		return enigma.NewWriter(w), nil
	case format.SrgFile, format.XsrgFile:
		return srg.NewWriter(w, f == format.XsrgFile), nil
	case format.JamFile:
		return srg.NewJamWriter(w), nil
	case format.CsrgFile, format.TsrgFile, format.Tsrg2File:
		tw, err := tsrg.NewWriter(w, f)
		if err != nil {
			return nil, err
		}

		return tw, nil
	case format.ProguardFile:
		return proguard.NewWriter(w), nil
	case format.RecafSimpleFile:
		return recaf.NewWriter(w), nil
	case format.JobfFile:
		return jobf.NewWriter(w), nil
	}

	if f.IsDirectory() {
		return nil, fmt.Errorf("%w: %s is a directory format", ErrUnsupported, f)
	}

	return nil, fmt.Errorf("%w: %s", format.ErrUnknownFormat, f)
}

// NewDir returns an encoder for a directory dialect creating files below dir.
func NewDir(fsys afero.Fs, dir string, f format.Format) (Writer, error) {
	if f == format.EnigmaDir {
		return enigma.NewDirWriter(fsys, dir), nil
	}

	return nil, fmt.Errorf("%w: %s as a directory", ErrUnsupported, f)
}
