// Package logger prints diagnostic output for the AllyLab CLI.
// Debug, Info and Section trace the scan and ranking pipeline and stay
// silent unless --verbose is set; Warn always writes, so degraded runs
// (a page audit failing, a misconfigured LLM) surface without it.
// Everything goes to stderr to keep stdout clean for command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	sink    io.Writer = os.Stderr
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

// SetOutput redirects log output, mainly for tests. Defaults to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = w
}

// Debug prints a pipeline trace message in verbose mode.
func Debug(format string, args ...any) {
	logf(true, "[DEBUG] ", format, args...)
}

// Info prints a progress message in verbose mode.
func Info(format string, args ...any) {
	logf(true, "[INFO] ", format, args...)
}

// Warn prints a warning. Warnings are not gated on verbose mode.
func Warn(format string, args ...any) {
	logf(false, "[WARN] ", format, args...)
}

// Section prints a header separating verbose output into phases.
func Section(name string) {
	logf(true, "", "\n--- %s ---", name)
}

func logf(gated bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	fmt.Fprintf(sink, prefix+format+"\n", args...)
}
