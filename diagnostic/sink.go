package diagnostic

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Sink receives diagnostics during decoding.
//
// A non-nil error from Add aborts decoding and is returned to the caller
// unchanged.
type Sink interface {
	Add(d Diagnostic) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic) error

// Add calls f(d).
func (f SinkFunc) Add(d Diagnostic) error {
	return f(d)
}

// FailAt returns a sink that aborts on the first diagnostic at or above
// threshold with an *Error, ignoring anything less severe.
func FailAt(threshold Severity) Sink {
	return SinkFunc(func(d Diagnostic) error {
		if d.Severity >= threshold {
			return &Error{Diagnostic: d}
		}

		return nil
	})
}

// Discard returns a sink that drops every diagnostic.
func Discard() Sink {
	return SinkFunc(func(Diagnostic) error { return nil })
}

// Tee forwards every diagnostic to each sink in order, stopping at the first
// error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) error {
		for _, s := range sinks {
			if err := s.Add(d); err != nil {
				return err
			}
		}

		return nil
	})
}

// Logging logs each diagnostic at the level matching its severity, then
// forwards it to next. A nil next only logs.
func Logging(logger log.Logger, next Sink) Sink {
	return SinkFunc(func(d Diagnostic) error {
		var l log.Logger

		switch d.Severity {
		case SeverityError:
			l = level.Error(logger)
		case SeverityWarning:
			l = level.Warn(logger)
		default:
			l = level.Info(logger)
		}

		_ = l.Log("msg", d.Message, "code", d.Code, "line", d.Line, "column", d.Column)

		if next == nil {
			return nil
		}

		return next.Add(d)
	})
}
