// Package trace provides an optional, no-op-by-default logger for the
// codec's state machines. It replaces the upstream C port's always-on
// log.Printf trace with something a caller has to opt into.
package trace

import "log"

// Logger is a minimal leveled-enough wrapper over *log.Logger. The zero
// value discards everything, matching the codec's default of tracing
// nothing on the hot sink/poll path.
type Logger struct {
	l *log.Logger
}

// Discard is the default Logger: every call is a no-op.
var Discard = Logger{}

// New wraps an existing *log.Logger for use as a codec trace sink. A nil
// argument behaves like Discard.
func New(l *log.Logger) Logger {
	if l == nil {
		return Discard
	}
	return Logger{l: l}
}

// Printf logs a trace line if a logger was configured, otherwise does
// nothing. Arguments are never formatted when tracing is disabled.
func (t Logger) Printf(format string, args ...any) {
	if t.l == nil {
		return
	}
	t.l.Printf(format, args...)
}
