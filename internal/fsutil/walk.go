// Package fsutil walks directory-based mapping dialects.
package fsutil

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile is honoured at the root of a walked directory.
const IgnoreFile = ".gitignore"

// Walk returns the regular files below root whose name ends in ext, in
// lexical order. Paths matched by a .gitignore at root are skipped.
func Walk(fsys afero.Fs, root, ext string) ([]string, error) {
	gi, err := loadIgnore(fsys, root)
	if err != nil {
		return nil, err
	}

	var files []string

	err = afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(info.Name(), ext) {
			return nil
		}

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		files = append(files, p)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

// RelPath returns p relative to root with forward slashes.
func RelPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}

	return path.Clean(filepath.ToSlash(rel))
}

func loadIgnore(fsys afero.Fs, root string) (*ignore.GitIgnore, error) {
	p := filepath.Join(root, IgnoreFile)

	ok, err := afero.Exists(fsys, p)
	if err != nil || !ok {
		return nil, err
	}

	data, err := afero.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}

	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...), nil
}
