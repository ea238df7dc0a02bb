package format

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// DetectHeaderLen is the size of the content prefix inspected by Detect.
const DetectHeaderLen = 4096

// Detect classifies the content of r.
//
// The returned reader replays everything Detect consumed followed by the rest
// of r, so the caller can decode from it directly; r itself is never rewound.
// The SRG/XSRG scan keeps reading past DetectHeaderLen until a field line
// settles the dialect. Unknown is returned when nothing matches; callers must
// treat that as a failure.
func Detect(r io.Reader) (Format, io.Reader, error) {
	head := make([]byte, DetectHeaderLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Unknown, nil, fmt.Errorf("reading header: %w", err)
	}

	head = head[:n]
	rest := io.MultiReader(bytes.NewReader(head), r)

	if n < 3 {
		return Unknown, rest, nil
	}

	switch string(head[:3]) {
	case "v1\t":
		return TinyFile, rest, nil
	case "tin":
		return Tiny2File, rest, nil
	case "tsr":
		return Tsrg2File, rest, nil
	case "CLA":
		return EnigmaFile, rest, nil
	case "PK:", "CL:", "MD:", "FD:":
		return detectSrgOrXsrg(rest)
	case "CL ", "FD ", "MD ", "MP ":
		return JamFile, rest, nil
	}

	switch {
	case bytes.Contains(head, []byte(" -> ")):
		return ProguardFile, rest, nil
	case bytes.Contains(head, []byte("\n\t")):
		return TsrgFile, rest, nil
	default:
		return Unknown, rest, nil
	}
}

// detectSrgOrXsrg scans field lines until one carries descriptors (XSRG) or
// one proves there are none (SRG). Running out of input means SRG.
func detectSrgOrXsrg(r io.Reader) (Format, io.Reader, error) {
	var consumed bytes.Buffer

	br := bufio.NewReader(io.TeeReader(r, &consumed))
	replay := func() io.Reader {
		return io.MultiReader(bytes.NewReader(consumed.Bytes()), r)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Unknown, nil, fmt.Errorf("scanning srg lines: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "FD:") {
			parts := splitDropTrailing(line, " ")
			if len(parts) < 5 {
				return SrgFile, replay(), nil
			}

			if !isEmptyOrComment(parts[3]) && !isEmptyOrComment(parts[4]) {
				return XsrgFile, replay(), nil
			}
		}

		if err != nil {
			return SrgFile, replay(), nil
		}
	}
}

// DetectPath classifies a file or directory on fs. Directories are always
// Enigma directories.
func DetectPath(fs afero.Fs, path string) (Format, error) {
	fi, err := fs.Stat(path)
	if err != nil {
		return Unknown, fmt.Errorf("stat %s: %w", path, err)
	}

	if fi.IsDir() {
		return EnigmaDir, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	format, _, err := Detect(f)

	return format, err
}

// splitDropTrailing splits s on sep and removes trailing empty fields.
func splitDropTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}

func isEmptyOrComment(s string) bool {
	return s == "" || strings.HasPrefix(s, "#")
}
