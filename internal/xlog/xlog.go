/*
Package xlog provides a Logger interface and supporting functions to
control debug output.

The standard library log package provides no way to enable or disable
output and calling methods on a nil *log.Logger panics. The Logger
interface here is satisfied by log.Logger, and all package functions accept
a nil Logger and then do nothing. That keeps debug statements in the
decoder essentially free when debugging is off.
*/
package xlog

import "fmt"

// Logger is the interface the functions of this package require. The
// log.Logger type supports it.
type Logger interface {
	Output(calldepth int, s string) error
}

// Quiet is the Logger that discards all output.
var Quiet Logger

// Print outputs the arguments using the logger. If the logger is nil
// nothing will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger is nil
// nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger is nil
// nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
