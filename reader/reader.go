package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"

	"mapping-io/format"
	"mapping-io/format/enigma"
	"mapping-io/format/jobf"
	"mapping-io/format/proguard"
	"mapping-io/format/recaf"
	"mapping-io/format/srg"
	"mapping-io/format/tiny"
	"mapping-io/format/tsrg"
	"mapping-io/internal/pass"
	"mapping-io/visitor"
)

// ErrDirectoryFormat is returned when a directory dialect is read from a stream.
var ErrDirectoryFormat = errors.New("directory format cannot be read from a stream, use the path based API")

// Read decodes r into v. Without cfg.Format the dialect is detected from the
// content.
func Read(r io.Reader, v visitor.Visitor, cfg Config) error {
	cfg = cfg.applyDefaults()

	f, r, err := resolve(r, cfg)
	if err != nil {
		return err
	}

	if f.IsDirectory() {
		return fmt.Errorf("%w: %s", ErrDirectoryFormat, f)
	}

	logDispatch(cfg.Logger, f, v)

	switch f {
	case format.TinyFile:
		return tiny.ReadV1(r, v, cfg.Sink)
	case format.Tiny2File:
		return tiny.ReadV2(r, v, cfg.Sink)
	case format.EnigmaFile:
		return enigma.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.SrgFile, format.XsrgFile:
		return srg.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.JamFile:
		return srg.ReadJam(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.CsrgFile, format.TsrgFile, format.Tsrg2File:
		return tsrg.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.ProguardFile:
		return proguard.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.RecafSimpleFile:
		return recaf.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	case format.JobfFile:
		return jobf.Read(r, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	default:
		return fmt.Errorf("%w: %s", format.ErrUnknownFormat, f)
	}
}

// ReadPath decodes the file or directory at path on cfg.FS into v.
func ReadPath(path string, v visitor.Visitor, cfg Config) (err error) {
	cfg = cfg.applyDefaults()

	f := cfg.Format
	if f == format.Unknown {
		f, err = format.DetectPath(cfg.FS, path)
		if err != nil {
			return err
		}

		if f == format.Unknown {
			return fmt.Errorf("%w: %s", format.ErrUnknownFormat, path)
		}
	}

	switch f {
	case format.Tiny2Dir:
		logDispatch(cfg.Logger, f, v)

		return tiny.ReadV2Dir(cfg.FS, path, v, cfg.Sink)
	case format.EnigmaDir:
		logDispatch(cfg.Logger, f, v)

		return enigma.ReadDir(cfg.FS, path, cfg.SourceNamespace, cfg.TargetNamespace, v, cfg.Sink)
	}

	file, err := cfg.FS.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	cfg.Format = f

	return Read(file, v, cfg)
}

// Namespaces returns the namespaces declared by r without decoding its
// content. Dialects without namespaces yield the configured fallback pair.
func Namespaces(r io.Reader, cfg Config) (string, []string, error) {
	cfg = cfg.applyDefaults()

	f, r, err := resolve(r, cfg)
	if err != nil {
		return "", nil, err
	}

	if f.IsDirectory() {
		return "", nil, fmt.Errorf("%w: %s", ErrDirectoryFormat, f)
	}

	switch f {
	case format.TinyFile:
		return tiny.NamespacesV1(r)
	case format.Tiny2File:
		return tiny.NamespacesV2(r)
	case format.Tsrg2File:
		return tsrg.Namespaces(r)
	default:
		return cfg.SourceNamespace, []string{cfg.TargetNamespace}, nil
	}
}

// NamespacesPath is Namespaces for a file or directory on cfg.FS.
func NamespacesPath(path string, cfg Config) (src string, dst []string, err error) {
	cfg = cfg.applyDefaults()

	f := cfg.Format
	if f == format.Unknown {
		f, err = format.DetectPath(cfg.FS, path)
		if err != nil {
			return "", nil, err
		}
	}

	switch f {
	case format.Tiny2Dir:
		return tiny.DirNamespaces(cfg.FS, path, false)
	case format.EnigmaDir:
		return cfg.SourceNamespace, []string{cfg.TargetNamespace}, nil
	case format.Unknown:
		return "", nil, fmt.Errorf("%w: %s", format.ErrUnknownFormat, path)
	}

	file, err := cfg.FS.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	cfg.Format = f

	return Namespaces(file, cfg)
}

// resolve returns cfg.Format or detects it, along with a reader positioned at
// the start of the content.
func resolve(r io.Reader, cfg Config) (format.Format, io.Reader, error) {
	if cfg.Format != format.Unknown {
		return cfg.Format, r, nil
	}

	f, rest, err := format.Detect(r)
	if err != nil {
		return format.Unknown, nil, err
	}

	if f == format.Unknown {
		return format.Unknown, nil, format.ErrUnknownFormat
	}

	level.Debug(cfg.Logger).Log("msg", "detected mapping format", "format", f)

	return f, rest, nil
}

func logDispatch(logger log.Logger, f format.Format, v visitor.Visitor) {
	opts := pass.Options{MetadataInContent: f == format.TinyFile}

	level.Debug(logger).Log(
		"msg", "reading mappings",
		"format", f,
		"buffered", pass.Buffered(v.Flags(), opts),
		"multi_pass", v.Flags().Has(visitor.NeedsMultiplePasses),
	)
}
