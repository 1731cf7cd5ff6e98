// Package logger provides leveled logging for the claims client.
//
// Debug, Info and Warn lines are only written in verbose mode (the
// --verbose flag). Error lines are always written. Output goes to stderr
// so it never mixes with command output or the TUI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(level Level, component, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < LevelError && !verbose {
		return
	}
	prefix := "[" + level.tag() + "] "
	if component != "" {
		prefix += component + ": "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { write(LevelDebug, "", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { write(LevelInfo, "", format, args...) }

// Warn prints a warning if verbose mode is enabled.
func Warn(format string, args ...any) { write(LevelWarn, "", format, args...) }

// Error always prints.
func Error(format string, args ...any) { write(LevelError, "", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Logger prefixes every line with a component name.
type Logger struct {
	component string
}

// For returns a logger for a component such as "upload" or "httpapi".
func For(component string) Logger {
	return Logger{component: component}
}

func (l Logger) Debug(format string, args ...any) { write(LevelDebug, l.component, format, args...) }
func (l Logger) Info(format string, args ...any)  { write(LevelInfo, l.component, format, args...) }
func (l Logger) Warn(format string, args ...any)  { write(LevelWarn, l.component, format, args...) }
func (l Logger) Error(format string, args ...any) { write(LevelError, l.component, format, args...) }
