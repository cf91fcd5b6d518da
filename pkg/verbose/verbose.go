// Package verbose provides opt-in debug logging for the --verbose flag.
package verbose

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	//nolint:exhaustruct // only the fields we care about
	return &logrus.Logger{
		Out:       w,
		Formatter: &logrus.TextFormatter{FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.InfoLevel,
	}
}

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag and raises the logger to debug level
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	logger.SetLevel(logrus.DebugLevel)
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger.SetLevel(logrus.InfoLevel)
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		logger.SetOutput(w)
	}
}

// Printf prints a formatted debug message if enabled.
//
// Parameters:
//   - format: Printf-style format string; a trailing newline is dropped
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		logger.Debugf(strings.TrimSuffix(format, "\n"), args...)
	}
}

// Infof prints a formatted informational message if enabled.
func Infof(format string, args ...any) {
	if IsEnabled() {
		logger.Infof(strings.TrimSuffix(format, "\n"), args...)
	}
}
