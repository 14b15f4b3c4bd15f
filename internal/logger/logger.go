// Package logger provides leveled diagnostic logging for the sts CLI.
// Messages go to stderr so they never mix with timestamps on stdout.
// Nothing is printed until a level is enabled via --verbose or --debug.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls which messages are printed.
type Level int

const (
	// LevelQuiet prints nothing.
	LevelQuiet Level = iota
	// LevelInfo prints Info and Warn messages.
	LevelInfo
	// LevelDebug prints everything.
	LevelDebug
)

var (
	mu     sync.RWMutex
	level  = LevelQuiet
	output io.Writer = os.Stderr
)

// SetLevel sets the current log level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// CurrentLevel returns the current log level.
func CurrentLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// Enabled reports whether messages at l are printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l != LevelQuiet && level >= l
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message at debug level.
func Debug(format string, args ...any) {
	logf(LevelDebug, "DEBUG", format, args...)
}

// Info prints a message at info level.
func Info(format string, args ...any) {
	logf(LevelInfo, "INFO", format, args...)
}

// Warn prints a warning at info level.
func Warn(format string, args ...any) {
	logf(LevelInfo, "WARN", format, args...)
}

// Section prints a section header at debug level.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(l Level, tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= l {
		fmt.Fprintf(output, "["+tag+"] "+format+"\n", args...)
	}
}
