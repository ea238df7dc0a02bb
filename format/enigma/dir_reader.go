package enigma

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/internal/fsutil"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ReadDir decodes every Enigma file below dir as one mapping, in lexical path
// order.
func ReadDir(fsys afero.Fs, dir, srcNamespace, dstNamespace string, v visitor.Visitor, sink diagnostic.Sink) error {
	files, err := fsutil.Walk(fsys, dir, "."+format.EnigmaFile.Info().Ext)
	if err != nil {
		return err
	}

	return pass.Run(pass.Restart{}, v, pass.Options{}, func(v visitor.Visitor, _ bool) error {
		ok, err := pass.Header(v, srcNamespace, dstNamespace)
		if err != nil || !ok {
			return err
		}

		for _, name := range files {
			err = readFile(fsys, name, v, sink)
			if err != nil {
				return fmt.Errorf("%s: %w", fsutil.RelPath(dir, name), err)
			}
		}

		return nil
	})
}

func readFile(fsys afero.Fs, name string, v visitor.Visitor, sink diagnostic.Sink) (err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	d, err := newDecoder(f, sink)
	if err != nil {
		return err
	}

	return d.readContent(v)
}
