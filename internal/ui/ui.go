// Package ui formats the btrace CLI's terminal output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var writer io.Writer = os.Stderr

// SetWriter overrides the output writer (for testing).
func SetWriter(w io.Writer) {
	writer = w
}

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

func ansi(code, s string) string {
	if !stdoutColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func ansiStderr(code, s string) string {
	if !stderrColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s wrapped in bold ANSI codes (stdout).
func Bold(s string) string { return ansi("1", s) }

// Green returns s wrapped in green ANSI codes (stdout).
func Green(s string) string { return ansi("32", s) }

// Yellow returns s wrapped in yellow ANSI codes (stdout).
func Yellow(s string) string { return ansi("33", s) }

// OKTag returns a green "✓" for success indicators.
func OKTag() string { return Green("✓") }

// WarnTag returns a yellow "⚠" for warning indicators.
func WarnTag() string { return Yellow("⚠") }

// Warnf prints a formatted user-facing warning to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("33", "Warning:"), fmt.Sprintf(format, args...))
}
