// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package xlog provides a Logger interface and supporting functions to
support control over debug and warning output.

The Logger interface is simple and it is supported by the log.Logger type.
If a Logger is nil, the Print functions don't do anything, so a package may
keep a nil logger around and switch debug output on in its tests.

Additionally the package maintains a standard logger for commands. Its
messages have a priority; debug messages are suppressed unless the
Ldebug flag is set and warnings are suppressed by Lnowarn.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the interface required by the Print functions. The log.Logger
// type supports it.
type Logger interface {
	Output(calldepth int, s string) error
}

// quiet is a logger that prints nothing.
type quiet struct{}

func (quiet) Output(calldepth int, s string) error { return nil }

// Quiet is a Logger that discards all messages. Use it instead of nil
// where a non-nil logger is expected.
var Quiet Logger = quiet{}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// Flags for the standard logger. The log flags of the log package can be
// combined with them.
const (
	// Ldebug enables the output of debug messages.
	Ldebug = 1 << (16 + iota)
	// Lnowarn suppresses warnings.
	Lnowarn
)

// stdLogger is the logger used by the package level functions.
type stdLogger struct {
	mu    sync.Mutex
	flags int
	l     *log.Logger
}

var std = &stdLogger{l: log.New(os.Stderr, "", log.LstdFlags)}

// SetFlags sets the flags of the standard logger.
func SetFlags(flags int) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.flags = flags
	std.l.SetFlags(flags & (Ldebug - 1))
}

// Flags returns the flags of the standard logger.
func Flags() int {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.flags
}

// SetPrefix sets the prefix of the standard logger.
func SetPrefix(prefix string) { std.l.SetPrefix(prefix) }

// SetOutput sets the output destination of the standard logger.
func SetOutput(w io.Writer) { std.l.SetOutput(w) }

func (s *stdLogger) output(mask int, set bool, msg string) {
	s.mu.Lock()
	on := s.flags&mask != 0
	s.mu.Unlock()
	if on != set {
		return
	}
	s.l.Output(3, msg)
}

// Debug prints a debug message if the Ldebug flag is set.
func Debug(v ...interface{}) { std.output(Ldebug, true, fmt.Sprint(v...)) }

// Debugf prints a formatted debug message if the Ldebug flag is set.
func Debugf(format string, v ...interface{}) {
	std.output(Ldebug, true, fmt.Sprintf(format, v...))
}

// Warn prints a warning unless the Lnowarn flag is set.
func Warn(v ...interface{}) { std.output(Lnowarn, false, fmt.Sprint(v...)) }

// Warnf prints a formatted warning unless the Lnowarn flag is set.
func Warnf(format string, v ...interface{}) {
	std.output(Lnowarn, false, fmt.Sprintf(format, v...))
}

// Fatal prints the message and exits the program with exit code 1.
func Fatal(v ...interface{}) {
	std.l.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf prints the formatted message and exits the program with exit
// code 1.
func Fatalf(format string, v ...interface{}) {
	std.l.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}
