// Package debug provides opt-in diagnostic logging.
//
// The library is embedded inside editor hosts that own stdout/stderr,
// so nothing is written anywhere until the host installs a writer.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be overridden at build time:
// go build -ldflags "-X github.com/standardbeagle/lpa/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	mu     sync.Mutex
	output io.Writer
	file   *os.File
)

// SetOutput installs a writer for debug output. Pass nil to disable.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// InitLogFile directs debug output to a timestamped file under the
// system temp directory and returns its path. Call Close when done.
func InitLogFile() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	logDir := filepath.Join(os.TempDir(), "lpa-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", time.Now().Format("2006-01-02T150405")))
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	file = f
	output = f
	return logPath, nil
}

// Close closes the debug log file if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	output = nil
	return err
}

// Enabled reports whether any debug output would be emitted.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	mu.Lock()
	defer mu.Unlock()
	return output != nil
}

func writer() io.Writer {
	if output != nil {
		return output
	}
	if EnableDebug == "true" {
		return os.Stderr
	}
	return nil
}

// Printf writes a formatted debug line.
func Printf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// Log writes a component-tagged debug line.
func Log(component, format string, args ...interface{}) {
	Printf("[%s] %s", component, fmt.Sprintf(format, args...))
}

// LogProfiles logs profile loading and registry activity.
func LogProfiles(format string, args ...interface{}) {
	Log("PROFILES", format, args...)
}

// LogAnalyze logs analysis runs and strategy decisions.
func LogAnalyze(format string, args ...interface{}) {
	Log("ANALYZE", format, args...)
}

// LogPatterns logs pattern compilation and matching degradations.
func LogPatterns(format string, args ...interface{}) {
	Log("PATTERNS", format, args...)
}
