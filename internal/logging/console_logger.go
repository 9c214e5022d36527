// Package logging provides the console logger used by the mdto CLI.
//
// All output goes to stderr so that generated XML on stdout stays clean
// and can be piped or redirected without interleaved diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiDim    = "\033[2m"
	ansiReset  = "\033[0m"
)

// ConsoleLogger writes human-readable messages to stderr.
//
// Verbose messages appear only when verbose mode is on. Quiet mode
// suppresses everything except errors. Colors are enabled only when
// stderr is a terminal and neither NO_COLOR nor CI is set.
type ConsoleLogger struct {
	verbose bool
	quiet   bool
	color   bool
	w       io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a logger for the given verbosity settings.
// When both verbose and quiet are requested, quiet wins for everything
// below the error level.
func NewConsoleLogger(verbose, quiet bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		quiet:   quiet,
		color:   colorEnabled(),
		w:       os.Stderr,
	}
}

// Verbose logs a message that is only of interest when debugging a run.
func (c *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !c.verbose || c.quiet {
		return
	}
	c.print("[VERBOSE] ", ansiDim, format, args)
}

// Info logs a progress message.
func (c *ConsoleLogger) Info(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	c.print("", "", format, args)
}

// Warn logs a recoverable problem, such as a failed format detection in
// non-strict mode.
func (c *ConsoleLogger) Warn(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	c.print("[WARNING] ", ansiYellow, format, args)
}

// Error logs a fatal problem. Errors are shown even in quiet mode.
func (c *ConsoleLogger) Error(format string, args ...interface{}) {
	c.print("[ERROR] ", ansiRed, format, args)
}

func (c *ConsoleLogger) print(prefix, color, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color && color != "" {
		fmt.Fprintf(c.w, "%s%s%s%s\n", color, prefix, msg, ansiReset)
		return
	}
	fmt.Fprintf(c.w, "%s%s\n", prefix, msg)
}

// colorEnabled reports whether stderr output may use ANSI colors.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
