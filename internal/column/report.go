package column

import (
	"fmt"

	"mapping-io/diagnostic"
)

// Reporter tags diagnostics with the reader's current line and column before
// handing them to a sink.
type Reporter struct {
	r    *Reader
	sink diagnostic.Sink
}

// NewReporter binds r to sink. A nil sink discards.
func NewReporter(r *Reader, sink diagnostic.Sink) *Reporter {
	if sink == nil {
		sink = diagnostic.Discard()
	}

	return &Reporter{r: r, sink: sink}
}

// Error reports an element that had to be skipped.
func (p *Reporter) Error(code, format string, args ...any) error {
	return p.add(diagnostic.SeverityError, code, format, args...)
}

// Warn reports partially missing data.
func (p *Reporter) Warn(code, format string, args ...any) error {
	return p.add(diagnostic.SeverityWarning, code, format, args...)
}

// Info reports a cosmetic problem.
func (p *Reporter) Info(code, format string, args ...any) error {
	return p.add(diagnostic.SeverityInfo, code, format, args...)
}

func (p *Reporter) add(sev diagnostic.Severity, code, format string, args ...any) error {
	return p.sink.Add(diagnostic.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     p.r.LineNumber(),
		Column:   p.r.ColumnNumber(),
	})
}
