// Package audit writes the durable per-document outcome log. One line per
// event, append-only, opened and closed around each write so the file is
// never held across documents.
package audit

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Level values for log lines.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

type Logger struct {
	path string
	now  func() time.Time
}

func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Log appends one `[timestamp] [LEVEL] message [extra]` line.
func (l *Logger) Log(level, message string, extra ...string) error {
	line := fmt.Sprintf("[%s] [%s] %s", l.now().Format(timeLayout), level, message)
	if tail := strings.TrimSpace(strings.Join(extra, " ")); tail != "" {
		line += " " + tail
	}
	return l.append(line + "\n")
}

// Info appends an INFO line.
func (l *Logger) Info(message string, extra ...string) error {
	return l.Log(LevelInfo, message, extra...)
}

// LogError appends a three-line error entry: context, error message, and a
// backtrace of the call site.
func (l *Logger) LogError(err error, context string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] Error in context: %s\n", l.now().Format(timeLayout), LevelError, context)
	fmt.Fprintf(&b, "Message: %v\n", err)
	fmt.Fprintf(&b, "StackTrace: %s\n", debug.Stack())
	return l.append(b.String())
}

func (l *Logger) append(s string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log %q: %w", l.path, err)
	}
	if _, err := f.WriteString(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("write audit log: %w", err)
	}
	return f.Close()
}
