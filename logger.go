package main

import (
	"io"
	"log"
)

// Logger is a stdlib logger with an optional debug level.
type Logger struct {
	*log.Logger
	dbg bool
}

func NewLogger(w io.Writer, debug bool) *Logger {
	return &Logger{log.New(w, "psm: ", 0), debug}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l != nil && l.dbg {
		l.Printf(format, args...)
	}
}
