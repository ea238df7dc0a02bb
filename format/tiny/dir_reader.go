package tiny

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/fsutil"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ErrNamespaceMismatch is returned when the files of a directory disagree on
// their namespaces.
var ErrNamespaceMismatch = errors.New("tiny directory: files declare different namespaces")

// DirNamespaces returns the namespaces of the Tiny v2 files below dir. Unless
// fullCertainty is set only the first file is inspected.
func DirNamespaces(fsys afero.Fs, dir string, fullCertainty bool) (string, []string, error) {
	files, err := fsutil.Walk(fsys, dir, "."+format.Tiny2File.Info().Ext)
	if err != nil {
		return "", nil, err
	}

	if len(files) == 0 {
		return format.SrcNamespaceFallback, []string{format.DstNamespaceFallback}, nil
	}

	if !fullCertainty {
		files = files[:1]
	}

	return dirNamespaces(fsys, dir, files)
}

// ReadV2Dir decodes every Tiny v2 file below dir as one mapping. Metadata of
// all files is visited in the header, followed by the content of each file in
// lexical path order.
func ReadV2Dir(fsys afero.Fs, dir string, v visitor.Visitor, sink diagnostic.Sink) error {
	files, err := fsutil.Walk(fsys, dir, "."+format.Tiny2File.Info().Ext)
	if err != nil {
		return err
	}

	srcNs, dstNs := format.SrcNamespaceFallback, []string{format.DstNamespaceFallback}
	if len(files) > 0 {
		srcNs, dstNs, err = dirNamespaces(fsys, dir, files)
		if err != nil {
			return err
		}
	}

	return pass.Run(pass.Restart{}, v, pass.Options{}, func(v visitor.Visitor, _ bool) (err error) {
		decoders := make([]*v2Decoder, 0, len(files))
		closers := make([]afero.File, 0, len(files))

		defer func() {
			for _, f := range closers {
				err = multierr.Append(err, f.Close())
			}
		}()

		for _, name := range files {
			f, openErr := fsys.Open(name)
			if openErr != nil {
				return fmt.Errorf("open %s: %w", fsutil.RelPath(dir, name), openErr)
			}

			closers = append(closers, f)

			d, decErr := newV2Decoder(f, sink)
			if decErr != nil {
				return fmt.Errorf("%s: %w", fsutil.RelPath(dir, name), decErr)
			}

			decoders = append(decoders, d)
		}

		visitHeader, err := v.VisitHeader()
		if err != nil {
			return err
		}

		if visitHeader {
			err = v.VisitNamespaces(srcNs, dstNs)
			if err != nil {
				return err
			}
		}

		for _, d := range decoders {
			err = d.readProperties(v, visitHeader)
			if err != nil {
				return err
			}
		}

		ok, err := v.VisitContent()
		if err != nil || !ok {
			return err
		}

		for _, d := range decoders {
			err = d.readContent(v)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func dirNamespaces(fsys afero.Fs, dir string, files []string) (string, []string, error) {
	var (
		srcNs string
		dstNs []string
	)

	for i, name := range files {
		src, dst, err := fileNamespaces(fsys, name)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", fsutil.RelPath(dir, name), err)
		}

		if i == 0 {
			srcNs, dstNs = src, dst

			continue
		}

		if src != srcNs || !slices.Equal(dst, dstNs) {
			return "", nil, fmt.Errorf("%w: %s", ErrNamespaceMismatch, fsutil.RelPath(dir, name))
		}
	}

	return srcNs, dstNs, nil
}

func fileNamespaces(fsys afero.Fs, name string) (src string, dst []string, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", nil, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return NamespacesV2(f)
}
