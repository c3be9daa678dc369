// Package logger provides the coloured, component-prefixed loggers used
// across the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-maze/config"
)

var ErrNilWriter = errors.New("logger requires a writer")

// Logger writes "[PREFIX] [LEVEL] message" lines, colouring the prefix.
type Logger struct {
	out *log.Logger
}

// New creates a logger whose lines start with prefix in the given ANSI color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	p := fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset)
	return &Logger{out: log.New(w, p, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(color, level, msg string) {
	l.out.Printf("%s[%s]%s %s", color, level, config.LogColorReset, msg)
}
