// Package logger is the tool's diagnostic output: a shared prefix,
// stderr only, so reports on stdout stay pipeable.
package logger

import (
	"log"
	"os"
)

// Verbose at true enables Info; Error prints regardless.  The CLI
// sets this from --verbose or the config file.
var Verbose bool

var std = log.New(os.Stderr, "gowinpll: ", 0)

// Info prints a diagnostic line when Verbose is set.
func Info(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	std.Printf(format, args...)
}

// Error prints an error line always.
func Error(format string, args ...interface{}) {
	std.Printf(format, args...)
}
