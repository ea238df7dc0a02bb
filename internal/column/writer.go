package column

import (
	"bufio"
	"io"
)

// Writer is the encoding counterpart of Reader: it emits separator-delimited
// lines with leading indentation. Write errors are sticky and surface from
// Flush.
type Writer struct {
	w      *bufio.Writer
	indent byte
	sep    byte
	err    error
	open   bool
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer, indent, sep byte) *Writer {
	return &Writer{w: bufio.NewWriter(w), indent: indent, sep: sep}
}

// Indent starts a line with n indent characters.
func (w *Writer) Indent(n int) *Writer {
	for range n {
		w.writeByte(w.indent)
	}

	return w
}

// Col appends a column, preceded by the separator unless it is the first
// column of the line.
func (w *Writer) Col(s string) *Writer {
	if w.open {
		w.writeByte(w.sep)
	}

	w.writeString(s)
	w.open = true

	return w
}

// Cols appends every column of cols.
func (w *Writer) Cols(cols ...string) *Writer {
	for _, c := range cols {
		w.Col(c)
	}

	return w
}

// Raw appends s without a separator.
func (w *Writer) Raw(s string) *Writer {
	w.writeString(s)
	w.open = true

	return w
}

// EOL terminates the current line.
func (w *Writer) EOL() {
	w.writeByte('\n')
	w.open = false
}

// Line writes cols as one complete line.
func (w *Writer) Line(cols ...string) {
	w.Cols(cols...).EOL()
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}

	w.err = w.w.Flush()

	return w.err
}

func (w *Writer) writeByte(c byte) {
	if w.err == nil {
		w.err = w.w.WriteByte(c)
	}
}

func (w *Writer) writeString(s string) {
	if w.err == nil {
		_, w.err = w.w.WriteString(s)
	}
}
