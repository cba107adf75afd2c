/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Logging
 */

// Package ipplog implements the small structured logger this module's
// own code (and cmd/ippfile) writes through, instead of the standard
// library's log package.
package ipplog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level enumerates log levels as a bit mask, so a Logger can be
// configured to emit any combination.
type Level int

// Level values
const (
	LevelError Level = 1 << iota
	LevelInfo
	LevelDebug

	LevelAll = LevelError | LevelInfo | LevelDebug
)

// String returns level's name, or a composite listing if level is a
// combination of more than one bit.
func (level Level) String() string {
	switch level {
	case 0:
		return "none"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelAll:
		return "all"
	}
	return fmt.Sprintf("Level(%d)", int(level))
}

// Logger writes level-gated, prefixed lines to an io.Writer: a thin,
// mutex-serialized wrapper around one destination. There is no log
// rotation and no fan-out; a library and a filter-style CLI need
// neither.
type Logger struct {
	lock     sync.Mutex
	out      io.Writer
	levels   Level
	withTime bool
}

// New creates a Logger writing to out, with the given levels enabled.
func New(out io.Writer, levels Level) *Logger {
	return &Logger{out: out, levels: levels}
}

// SetLevels changes which levels this Logger emits.
func (l *Logger) SetLevels(levels Level) {
	l.lock.Lock()
	l.levels = levels
	l.lock.Unlock()
}

// SetOutput redirects the Logger to a different writer.
func (l *Logger) SetOutput(out io.Writer) {
	l.lock.Lock()
	l.out = out
	l.lock.Unlock()
}

// WithTime toggles a leading wall-clock timestamp on every line;
// console output usually goes untimed, file-backed output timed.
// Returns l for chaining at construction time.
func (l *Logger) WithTime(on bool) *Logger {
	l.withTime = on
	return l
}

// write emits one line if level is among the Logger's enabled levels.
// prefix is a single marker character prepended to the line (0 for
// none).
func (l *Logger) write(level Level, prefix byte, format string, args ...interface{}) {
	if l.levels&level == 0 {
		return
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.withTime {
		fmt.Fprintf(l.out, "%s ", time.Now().Format("2006-01-02 15:04:05"))
	}
	if prefix != 0 {
		l.out.Write([]byte{prefix, ' '})
	}
	fmt.Fprintf(l.out, format, args...)
	l.out.Write([]byte{'\n'})
}

// Debug logs a line at LevelDebug, marked with a leading space.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, ' ', format, args...)
}

// Info logs a line at LevelInfo. No prefix by convention.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, 0, format, args...)
}

// Error logs a line at LevelError, marked with a leading '!'.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, '!', format, args...)
}

// Exit logs an error line, then terminates the process.
func (l *Logger) Exit(format string, args ...interface{}) {
	l.Error(format, args...)
	os.Exit(1)
}

// Check calls l.Exit if err is non-nil, a shortcut for fatal startup
// errors.
func (l *Logger) Check(err error) {
	if err != nil {
		l.Exit("%s", err)
	}
}

// Default is the package-level logger every component of this module
// falls back to unless a caller wires its own. Errors and info lines
// go to stderr by default; debug is off until a caller opts in with
// SetLevels.
var Default = New(os.Stderr, LevelError|LevelInfo)

// Debug, Info and Error are convenience wrappers around Default, for
// callers that don't need a Logger of their own.
func Debug(format string, args ...interface{}) { Default.Debug(format, args...) }
func Info(format string, args ...interface{})  { Default.Info(format, args...) }
func Error(format string, args ...interface{}) { Default.Error(format, args...) }
