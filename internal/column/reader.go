package column

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInt is returned when a present column does not hold an integer.
	ErrInvalidInt = errors.New("invalid integer column")
	// ErrNoMark is returned by Reset and DiscardMark without an outstanding mark.
	ErrNoMark = errors.New("no outstanding mark")
	// ErrLookbackExceeded is returned when a marked region outgrows the lookback limit.
	ErrLookbackExceeded = errors.New("lookback limit exceeded while marked")
)

// Option configures a Reader.
type Option func(*Reader)

// WithLookback bounds the number of bytes retained while a mark is outstanding.
// Zero means unbounded.
func WithLookback(n int) Option {
	return func(r *Reader) {
		r.lookback = n
	}
}

// Reader tokenizes a character stream into lines and columns.
//
// The reader starts positioned on the first line, as if NextLine(0) had
// accepted it. Columns are separated by sep; leading indent bytes define the
// nesting depth of a line.
type Reader struct {
	src    *bufio.Reader
	indent byte
	sep    byte

	lookback int
	buffered int
	srcDone  bool
	err      error

	lines []string
	base  int // line number of lines[0]
	cur   state

	marks []state
}

type state struct {
	idx      int
	pos      int
	colStart int
	eol      bool
	pending  bool
	extra    bool
}

// NewReader creates a Reader over r and loads the first line.
func NewReader(r io.Reader, indent, sep byte, opts ...Option) (*Reader, error) {
	cr := &Reader{
		src:    bufio.NewReader(r),
		indent: indent,
		sep:    sep,
		base:   1,
	}

	for _, opt := range opts {
		opt(cr)
	}

	ok, err := cr.fill()
	if err != nil {
		return nil, err
	}

	if !ok {
		cr.cur = state{eol: true}

		return cr, nil
	}

	line := cr.lines[0]
	n := cr.countIndent(line)
	cr.cur = state{extra: n > 0, eol: len(line) == 0}

	return cr, nil
}

// NextLine advances to the next line whose indent is at least indent and
// consumes indent leading indent bytes.
//
// It returns false without consuming the line when the next line is indented
// less than requested, so an enclosing loop with a smaller indent picks it up.
// With indent 0 blank lines are skipped.
func (r *Reader) NextLine(indent int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}

	for {
		if !r.cur.pending {
			ok, err := r.advance()
			if err != nil || !ok {
				return false, err
			}
		}

		r.cur.pending = false
		line := r.lines[r.cur.idx]

		if indent == 0 && len(line) == 0 {
			continue
		}

		n := r.countIndent(line)
		if n < indent {
			r.cur.pending = true
			r.cur.eol = true

			return false, nil
		}

		r.cur.pos = indent
		r.cur.colStart = indent
		r.cur.extra = n > indent
		r.cur.eol = r.cur.pos >= len(line)

		return true, nil
	}
}

// NextCol returns the next column of the current line.
func (r *Reader) NextCol() (string, bool) {
	if r.cur.eol {
		return "", false
	}

	line := r.line()
	r.cur.colStart = r.cur.pos

	if i := strings.IndexByte(line[r.cur.pos:], r.sep); i >= 0 {
		col := line[r.cur.pos : r.cur.pos+i]
		r.cur.pos += i + 1

		return col, true
	}

	col := line[r.cur.pos:]
	r.cur.pos = len(line)
	r.cur.eol = true

	return col, true
}

// NextColIs consumes the next column only if it equals expect.
func (r *Reader) NextColIs(expect string) bool {
	if r.cur.eol {
		return false
	}

	line := r.line()
	rest := line[r.cur.pos:]

	end := strings.IndexByte(rest, r.sep)
	if end < 0 {
		end = len(rest)
	}

	if rest[:end] != expect {
		return false
	}

	r.NextCol()

	return true
}

// NextColEscaped returns the next column, decoding backslash escapes when
// unescape is set.
func (r *Reader) NextColEscaped(unescape bool) (string, bool, error) {
	col, ok := r.NextCol()
	if !ok || !unescape {
		return col, ok, nil
	}

	dec, err := Unescape(col)
	if err != nil {
		return "", true, err
	}

	return dec, true, nil
}

// NextCols returns the remainder of the current line, separators included.
func (r *Reader) NextCols() (string, bool) {
	if r.cur.eol {
		return "", false
	}

	line := r.line()
	r.cur.colStart = r.cur.pos
	rest := line[r.cur.pos:]
	r.cur.pos = len(line)
	r.cur.eol = true

	return rest, true
}

// NextIntCol parses the next column as a decimal integer.
//
// An absent column yields (-1, false, nil). A present column that is empty or
// not a number yields ErrInvalidInt.
func (r *Reader) NextIntCol() (int, bool, error) {
	col, ok := r.NextCol()
	if !ok {
		return -1, false, nil
	}

	n, err := strconv.Atoi(col)
	if err != nil {
		return -1, true, fmt.Errorf("%w: %q", ErrInvalidInt, col)
	}

	return n, true, nil
}

// IsAtEol reports whether the current line has no further columns.
func (r *Reader) IsAtEol() bool {
	return r.cur.eol
}

// IsAtEOF reports whether nothing follows the current read position.
func (r *Reader) IsAtEOF() bool {
	if r.cur.idx >= len(r.lines) {
		return true
	}

	if !r.cur.eol || r.cur.pending {
		return false
	}

	if r.cur.idx+1 < len(r.lines) {
		return false
	}

	ok, err := r.fill()
	if err != nil {
		r.err = err

		return false
	}

	return !ok
}

// HasExtraIndents reports whether the current line is indented deeper than
// the indent passed to the NextLine call that accepted it.
func (r *Reader) HasExtraIndents() bool {
	return r.cur.extra
}

// LineNumber returns the 1-based number of the current line.
func (r *Reader) LineNumber() int {
	return r.base + r.cur.idx
}

// ColumnNumber returns the 1-based byte offset of the last column read.
func (r *Reader) ColumnNumber() int {
	return r.cur.colStart + 1
}

// Mark pushes the current position and returns the 1-based mark index.
func (r *Reader) Mark() int {
	r.marks = append(r.marks, r.cur)

	return len(r.marks)
}

// Reset rewinds to the most recent mark without releasing it and returns its
// 1-based index.
func (r *Reader) Reset() (int, error) {
	if len(r.marks) == 0 {
		return 0, ErrNoMark
	}

	r.cur = r.marks[len(r.marks)-1]

	return len(r.marks), nil
}

// DiscardMark releases the most recent mark.
func (r *Reader) DiscardMark() error {
	if len(r.marks) == 0 {
		return ErrNoMark
	}

	r.marks = r.marks[:len(r.marks)-1]

	return nil
}

func (r *Reader) line() string {
	if r.cur.idx >= len(r.lines) {
		return ""
	}

	return r.lines[r.cur.idx]
}

func (r *Reader) countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == r.indent {
		n++
	}

	return n
}

// advance moves to the following line, loading it when needed.
func (r *Reader) advance() (bool, error) {
	if r.cur.idx >= len(r.lines) {
		return false, nil
	}

	next := r.cur.idx + 1
	if next >= len(r.lines) {
		ok, err := r.fill()
		if err != nil {
			r.err = err

			return false, err
		}

		if !ok {
			r.cur = state{idx: len(r.lines), eol: true}

			return false, nil
		}
	}

	r.cur.idx = next
	r.compact()

	return true, nil
}

// fill appends one line from the source.
func (r *Reader) fill() (bool, error) {
	if r.srcDone {
		return false, nil
	}

	s, err := r.src.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading line %d: %w", r.base+len(r.lines), err)
	}

	if err != nil {
		r.srcDone = true

		if len(s) == 0 {
			return false, nil
		}
	}

	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	if len(r.marks) > 0 && r.lookback > 0 && r.buffered+len(s) > r.lookback {
		return false, ErrLookbackExceeded
	}

	r.lines = append(r.lines, s)
	r.buffered += len(s) + 1

	return true, nil
}

// compact drops lines behind the cursor once no mark can return to them.
func (r *Reader) compact() {
	if len(r.marks) > 0 || r.cur.idx == 0 {
		return
	}

	drop := r.cur.idx
	for _, l := range r.lines[:drop] {
		r.buffered -= len(l) + 1
	}

	r.lines = append(r.lines[:0], r.lines[drop:]...)
	r.base += drop
	r.cur.idx = 0
}
