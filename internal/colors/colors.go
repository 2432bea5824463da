// Package colors provides terminal color support for shell output.
//
// Colors are applied only when the terminal supports them; NO_COLOR
// disables and FORCE_COLOR forces them regardless of detection.
package colors

import (
	"os"
	"strings"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"

	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"

	BrightRed   = "\033[91m"
	BrightGreen = "\033[92m"
	BrightCyan  = "\033[96m"
)

var colorEnabled = shouldUseColor()

// shouldUseColor determines if the terminal supports colors.
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "" {
		return false
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return true
}

// SetColorEnabled allows manual control of color output.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return colorEnabled
}

func colorize(text, color string) string {
	if !colorEnabled {
		return text
	}
	return color + text + ColorReset
}

// Header colors a command result header line.
func Header(text string) string {
	return colorize(text, ColorBold)
}

// FileName colors a tracked filename.
func FileName(text string) string {
	return colorize(text, BrightCyan)
}

// Success colors a confirmation message.
func Success(text string) string {
	return colorize(text, BrightGreen)
}

// ErrorText colors an error message.
func ErrorText(text string) string {
	return colorize(text, BrightRed)
}

// Hash colors an abbreviated content hash.
func Hash(text string) string {
	return colorize(text, ColorYellow)
}

// Dim colors secondary detail such as timestamps.
func Dim(text string) string {
	return colorize(text, ColorGray)
}
