// Package warnings reports non-fatal problems, such as a failed registry lookup,
// on a swappable writer so tests can capture them.
package warnings

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
	logger               = newLogger(os.Stderr)
)

// newLogger builds the warn-level logrus logger bound to w.
func newLogger(w io.Writer) *logrus.Logger {
	//nolint:exhaustruct // only the fields we care about
	return &logrus.Logger{
		Out:       w,
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.WarnLevel,
	}
}

// Warnf writes a formatted warning message to the configured warning writer.
//
// It performs the following operations:
//   - Acquires a read lock to safely access the logger
//   - Formats the message, dropping a trailing newline (logrus adds its own)
//   - Emits it at warn level
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Warnf(strings.TrimSuffix(format, "\n"), args...)
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// It performs the following operations:
//   - Saves the previous writer and logger for restoration
//   - Rebinds the logger to w (os.Stderr if w is nil)
//   - Returns a function that restores the previous writer when called
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previousWriter, previousLogger := warnWriter, logger
	if w == nil {
		w = os.Stderr
	}
	warnWriter = w
	logger = newLogger(w)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter, logger = previousWriter, previousLogger
	}
}
