// Package diagnostics formats and accumulates the nyx analyzer's
// diagnostics: one formatted line per call, streamed to a sink, with a
// running error/warning count the driver uses for its exit code.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/nyxlang/nyx/internal/position"
)

// Level is a diagnostic's severity.
type Level int

const (
	LevelError Level = iota
	LevelWarning
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single formatted message tied to a source span.
type Diagnostic struct {
	Span    position.Span
	Message string
	Level   Level
}

// Reporter accumulates diagnostics and streams them to a sink. It is the
// analyzer's sole error-reporting surface (§4.6): diagnostics are
// values, never exceptions, and every rule that cannot be satisfied
// reports exactly one of them.
type Reporter struct {
	sink     io.Writer
	Errors   int
	Warnings int
}

// NewReporter constructs a Reporter writing to sink. A nil sink defaults
// to os.Stderr.
func NewReporter(sink io.Writer) *Reporter {
	if sink == nil {
		sink = os.Stderr
	}
	return &Reporter{sink: sink}
}

// emit formats and streams one diagnostic, incrementing the matching
// counter. It is the single choke point every wrapper below goes
// through, so the "one error(L:C): message" shape in §6 stays uniform.
func (r *Reporter) emit(level Level, span position.Span, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.sink, "%s(%s): %s\n", level, span, message)

	switch level {
	case LevelError:
		r.Errors++
	case LevelWarning:
		r.Warnings++
	}
}

// Warn reports a warning at span.
func (r *Reporter) Warn(span position.Span, format string, args ...any) {
	r.emit(LevelWarning, span, format, args...)
}
