package column

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEscape is returned for a backslash not followed by a known escape letter.
var ErrInvalidEscape = errors.New("invalid escape sequence")

const (
	toEscape = "\\\n\r\x00\t"
	escaped  = "\\nr0t"
)

// Escape encodes backslash, line breaks, NUL and tab as two-byte sequences.
func Escape(s string) string {
	if !strings.ContainsAny(s, toEscape) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + 8)

	for i := 0; i < len(s); i++ {
		if j := strings.IndexByte(toEscape, s[i]); j >= 0 {
			b.WriteByte('\\')
			b.WriteByte(escaped[j])

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// Unescape reverses Escape.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)

			continue
		}

		if i+1 >= len(s) {
			return "", fmt.Errorf("%w: trailing backslash in %q", ErrInvalidEscape, s)
		}

		j := strings.IndexByte(escaped, s[i+1])
		if j < 0 {
			return "", fmt.Errorf("%w: \\%c in %q", ErrInvalidEscape, s[i+1], s)
		}

		b.WriteByte(toEscape[j])
		i++
	}

	return b.String(), nil
}
