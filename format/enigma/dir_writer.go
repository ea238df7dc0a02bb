package enigma

import (
	"cmp"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"mapping-io/format"
	"mapping-io/visitor"
)

// DirWriter encodes visited mappings as an Enigma directory with one file per
// top-level class. Files are named after the destination name of the
// top-level class, falling back to its source name.
type DirWriter struct {
	visitor.Nop

	fsys afero.Fs
	dir  string

	files map[string]*dirFile
	cur   *Writer
	err   error

	classSrc string
	classDst string
}

type dirFile struct {
	f afero.File
	w *Writer
}

var _ visitor.Visitor = (*DirWriter)(nil)

// NewDirWriter returns a writer creating files below dir. Close flushes and
// closes every file.
func NewDirWriter(fsys afero.Fs, dir string) *DirWriter {
	return &DirWriter{fsys: fsys, dir: dir, files: make(map[string]*dirFile)}
}

// Close flushes and closes every file created so far.
func (w *DirWriter) Close() error {
	err := w.err

	for _, df := range w.files {
		err = multierr.Append(err, df.w.Close())
		err = multierr.Append(err, df.f.Close())
	}

	clear(w.files)

	return err
}

func (w *DirWriter) Flags() visitor.Flags {
	return visitor.NeedsSrcFieldDesc | visitor.NeedsSrcMethodDesc
}

func (w *DirWriter) VisitClass(srcName string) (bool, error) {
	w.classSrc, w.classDst = srcName, ""
	w.cur = nil

	return true, nil
}

func (w *DirWriter) VisitField(srcName, srcDesc string) (bool, error) {
	if w.cur == nil {
		return false, nil
	}

	return w.cur.VisitField(srcName, srcDesc)
}

func (w *DirWriter) VisitMethod(srcName, srcDesc string) (bool, error) {
	if w.cur == nil {
		return false, nil
	}

	return w.cur.VisitMethod(srcName, srcDesc)
}

func (w *DirWriter) VisitMethodArg(argPosition, lvIndex int, srcName string) (bool, error) {
	if w.cur == nil {
		return false, nil
	}

	return w.cur.VisitMethodArg(argPosition, lvIndex, srcName)
}

func (w *DirWriter) VisitMethodVar(int, int, int, int, string) (bool, error) {
	return false, nil
}

func (w *DirWriter) VisitDstName(kind visitor.ElementKind, ns int, name string) error {
	if kind == visitor.Class {
		if ns == 0 {
			w.classDst = name
		}

		return nil
	}

	if w.cur == nil {
		return nil
	}

	return w.cur.VisitDstName(kind, ns, name)
}

func (w *DirWriter) VisitElementContent(kind visitor.ElementKind) (bool, error) {
	if kind != visitor.Class {
		if w.cur == nil {
			return false, nil
		}

		return w.cur.VisitElementContent(kind)
	}

	df, err := w.file(cmp.Or(w.classDst, w.classSrc))
	if err != nil {
		return false, err
	}

	w.cur = df.w

	_, _ = w.cur.VisitClass(w.classSrc)

	if w.classDst != "" {
		_ = w.cur.VisitDstName(visitor.Class, 0, w.classDst)
	}

	return w.cur.VisitElementContent(kind)
}

func (w *DirWriter) VisitComment(kind visitor.ElementKind, comment string) error {
	if w.cur == nil {
		return nil
	}

	return w.cur.VisitComment(kind, comment)
}

// file returns the open file for the top-level class of name.
func (w *DirWriter) file(name string) (*dirFile, error) {
	outer, _, _ := strings.Cut(name, "$")

	path := filepath.Join(w.dir, filepath.FromSlash(outer)+"."+format.EnigmaFile.Info().Ext)
	if df, ok := w.files[path]; ok {
		return df, nil
	}

	err := w.fsys.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, err
	}

	f, err := w.fsys.Create(path)
	if err != nil {
		return nil, err
	}

	df := &dirFile{f: f, w: NewWriter(f)}
	w.files[path] = df

	return df, nil
}
