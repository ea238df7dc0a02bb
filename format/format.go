package format

import (
	"errors"
	"fmt"
	"strings"

	"mapping-io/internal/match"
)

// ErrUnknownFormat is returned when a format can be neither detected nor parsed.
var ErrUnknownFormat = errors.New("invalid/unsupported mapping format")

// Namespace names used by dialects that do not declare their own.
const (
	SrcNamespaceFallback = "source"
	DstNamespaceFallback = "target"
)

// Format identifies a mapping dialect.
type Format int

const (
	Unknown Format = iota

	TinyFile
	Tiny2File
	Tiny2Dir
	EnigmaFile
	EnigmaDir
	SrgFile
	XsrgFile
	JamFile
	CsrgFile
	TsrgFile
	Tsrg2File
	ProguardFile
	RecafSimpleFile
	JobfFile

	formatCount = int(iota)
)

// Info is the static description of a dialect.
type Info struct {
	// ID is the stable identifier used on the command line.
	ID string
	// Name is the human-readable name.
	Name string
	// Ext is the file extension without dot; empty for directory dialects.
	Ext string
	// Namespaces is set when the dialect declares its namespaces.
	Namespaces bool
	// FieldDescs is set when fields carry descriptors.
	FieldDescs bool
	// Comments, Args and Locals tell which optional element data is representable.
	Comments bool
	Args     bool
	Locals   bool
}

var infos = [formatCount]Info{
	Unknown:         {ID: "unknown", Name: "Unknown"},
	TinyFile:        {ID: "tiny", Name: "Tiny file", Ext: "tiny", Namespaces: true, FieldDescs: true},
	Tiny2File:       {ID: "tinyv2", Name: "Tiny v2 file", Ext: "tiny", Namespaces: true, FieldDescs: true, Comments: true, Args: true, Locals: true},
	Tiny2Dir:        {ID: "tinyv2-dir", Name: "Tiny v2 directory", Namespaces: true, FieldDescs: true, Comments: true, Args: true, Locals: true},
	EnigmaFile:      {ID: "enigma", Name: "Enigma file", Ext: "mapping", FieldDescs: true, Comments: true, Args: true},
	EnigmaDir:       {ID: "enigma-dir", Name: "Enigma directory", FieldDescs: true, Comments: true, Args: true},
	SrgFile:         {ID: "srg", Name: "SRG file", Ext: "srg"},
	XsrgFile:        {ID: "xsrg", Name: "XSRG file", Ext: "xsrg", FieldDescs: true},
	JamFile:         {ID: "jam", Name: "JAM file", Ext: "jam", FieldDescs: true, Args: true},
	CsrgFile:        {ID: "csrg", Name: "CSRG file", Ext: "csrg"},
	TsrgFile:        {ID: "tsrg", Name: "TSRG file", Ext: "tsrg"},
	Tsrg2File:       {ID: "tsrg2", Name: "TSRG2 file", Ext: "tsrg", Namespaces: true, FieldDescs: true, Args: true},
	ProguardFile:    {ID: "proguard", Name: "ProGuard file", Ext: "txt", FieldDescs: true},
	RecafSimpleFile: {ID: "recaf-simple", Name: "Recaf Simple file", Ext: "txt", FieldDescs: true},
	JobfFile:        {ID: "jobf", Name: "JOBF file", Ext: "jobf", FieldDescs: true},
}

// Formats returns every known dialect in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := TinyFile; int(f) < formatCount; f++ {
		out = append(out, f)
	}

	return out
}

// Info returns the static description of f.
func (f Format) Info() Info {
	if !f.IsValid() {
		return infos[Unknown]
	}

	return infos[f]
}

// IsValid reports whether f is a known dialect.
func (f Format) IsValid() bool {
	return f > Unknown && int(f) < formatCount
}

// String returns the format ID.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}

	return infos[f].ID
}

// IsDirectory reports whether f is stored as a directory of files.
func (f Format) IsDirectory() bool {
	return f.IsValid() && infos[f].Ext == ""
}

// Parse resolves a format ID, case- and separator-insensitively.
func Parse(id string) (Format, error) {
	norm := match.Normalize(id)

	ids := make([]string, 0, formatCount-1)
	for _, f := range Formats() {
		if match.Normalize(infos[f].ID) == norm {
			return f, nil
		}

		ids = append(ids, infos[f].ID)
	}

	if s := match.Suggest(id, ids, 0.6); len(s) > 0 {
		return Unknown, fmt.Errorf("%w: %q, did you mean %s?", ErrUnknownFormat, id, strings.Join(s, " or "))
	}

	return Unknown, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f == Unknown {
		return []byte{}, nil
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; empty text is Unknown.
func (f *Format) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*f = Unknown

		return nil
	}

	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}
