package log

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

var logger = logrus.New()

var errorOccured = false

var (
	successTag = color.New(color.FgGreen).SprintFunc()("Success:")
	warningTag = color.New(color.FgYellow).SprintFunc()("Warning:")
	errorTag   = color.New(color.FgRed).SprintFunc()("Error:")
	debugTag   = color.New(color.FgCyan).SprintFunc()("Debug:")
)

func init() {
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

func indent(format string) string {
	return strings.Repeat("  ", IndentationLevel) + format
}

// Log prints an indented and formatted message.
func Log(format string, a ...interface{}) {
	logger.Infof(indent(format), a...)
}

// Debug prints an indented and formatted debug message if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		logger.Infof(indent(debugTag+" "+format), a...)
	}
}

// Success prints an indented and formatted success message.
func Success(format string, a ...interface{}) {
	logger.Infof(indent(successTag+" "+format), a...)
}

// Warning prints an indented and formatted warning.
func Warning(format string, a ...interface{}) {
	logger.Warnf(indent(warningTag+" "+format), a...)
}

// Error prints an indented and formatted error message and records that an error occured.
func Error(format string, a ...interface{}) {
	errorOccured = true
	logger.Errorf(indent(errorTag+" "+format), a...)
}

// Fatal prints an indented and formatted error message and terminates the program.
//
// Reserved for the error kinds that are always fatal, never downgradable by
// `force`: binding-store precondition violations and integrity-check failures.
func Fatal(format string, a ...interface{}) {
	errorOccured = true
	logger.Fatalf(indent(errorTag+" "+format), a...)
}

// Progress reports placer phase advancement, e.g. "placed 12/40", visible with -v.
func Progress(placed, total int) {
	if Verbose {
		logger.Infof(indent(fmt.Sprintf("placed %d/%d", placed, total)))
	}
}
