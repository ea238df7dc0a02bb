package diagnostic

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Diagnostic codes emitted by the decoders.
const (
	CodeMissingName     = "missing_name"
	CodeMissingDstName  = "missing_dst_name"
	CodeMissingDesc     = "missing_desc"
	CodeInvalidName     = "invalid_name"
	CodeInvalidIndex    = "invalid_index"
	CodeMissingProperty = "missing_property"
	CodeMissingComment  = "missing_comment"
	CodeInvalidEscape   = "invalid_escape"
	CodeMalformedLine   = "malformed_line"
	CodeUnsupported     = "unsupported"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	// SeverityInfo marks input that is technically wrong but loses no data.
	SeverityInfo Severity = iota
	// SeverityWarning marks partially missing data; the element stays usable.
	SeverityWarning
	// SeverityError marks an element or sub-tree that was skipped.
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a severity name back to its value.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(name) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", name)
	}
}

// Diagnostic represents a single problem found while decoding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Line is the 1-based input line, zero when unknown.
	Line int
	// Column is the 1-based byte offset within Line, zero when unknown.
	Column int
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	switch {
	case d.Line > 0 && d.Column > 0:
		return fmt.Sprintf("line %d:%d: %s", d.Line, d.Column, msg)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s", d.Line, msg)
	default:
		return msg
	}
}

// Error wraps the diagnostic that made a sink abort decoding.
type Error struct {
	Diagnostic Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.Severity.String() + ": " + e.Diagnostic.String()
}

// Collector records every diagnostic in arrival order.
type Collector struct {
	Diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records d. It never fails.
func (c *Collector) Add(d Diagnostic) error {
	c.Diagnostics = append(c.Diagnostics, d)

	return nil
}

// Errors returns the error-severity diagnostics.
func (c *Collector) Errors() []Diagnostic {
	return c.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (c *Collector) Warnings() []Diagnostic {
	return c.filter(SeverityWarning)
}

// Infos returns the info-severity diagnostics.
func (c *Collector) Infos() []Diagnostic {
	return c.filter(SeverityInfo)
}

// HasErrors returns true if there are any error diagnostics.
func (c *Collector) HasErrors() bool {
	return len(c.Errors()) > 0
}

// IsValid returns true if there are no errors.
func (c *Collector) IsValid() bool {
	return !c.HasErrors()
}

// Max returns the highest recorded severity, false when nothing was recorded.
func (c *Collector) Max() (Severity, bool) {
	if len(c.Diagnostics) == 0 {
		return 0, false
	}

	maxSev := c.Diagnostics[0].Severity
	for _, d := range c.Diagnostics[1:] {
		maxSev = max(maxSev, d.Severity)
	}

	return maxSev, true
}

// Merge appends the diagnostics of other.
func (c *Collector) Merge(other *Collector) {
	c.Diagnostics = append(c.Diagnostics, other.Diagnostics...)
}

// Err returns a combined error from all error diagnostics, or nil if valid.
func (c *Collector) Err() error {
	var err error

	for _, d := range c.Errors() {
		err = multierr.Append(err, &Error{Diagnostic: d})
	}

	return err
}

// String returns one diagnostic per line.
func (c *Collector) String() string {
	parts := make([]string, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		parts = append(parts, d.Severity.String()+": "+d.String())
	}

	return strings.Join(parts, "\n")
}

func (c *Collector) filter(sev Severity) []Diagnostic {
	var out []Diagnostic

	for _, d := range c.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}

	return out
}
