package core

import (
	"fmt"
	"io"
	"log"
)

// Logger is consumed by the extraction loop for retry noise - recoverable
// faults are logged, never surfaced to callers as errors.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type writerLogger struct {
	logger *log.Logger
}

// NewLogger returns a Logger writing to the provided writer.
func NewLogger(w io.Writer) Logger {
	return &writerLogger{
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

func (l *writerLogger) log(level, format string, args ...any) {
	l.logger.Printf("[%s]: %s", level, fmt.Sprintf(format, args...))
}

func (l *writerLogger) Debugf(format string, args ...any) {
	l.log("debug", format, args...)
}

func (l *writerLogger) Infof(format string, args ...any) {
	l.log("info", format, args...)
}

func (l *writerLogger) Warnf(format string, args ...any) {
	l.log("warn", format, args...)
}

func (l *writerLogger) Errorf(format string, args ...any) {
	l.log("error", format, args...)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
