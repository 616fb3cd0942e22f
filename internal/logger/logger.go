package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes component-tagged lines. Debug and Info are only emitted
// when verbose is on; Warn and Error always are.
type Logger struct {
	component string
	verbose   func() bool
	mu        *sync.Mutex
	writer    io.Writer
}

// Field is a key-value pair appended to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// New creates a logger writing to stderr.
func New(component string, verbose func() bool) *Logger {
	return NewWithWriter(component, verbose, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(component string, verbose func() bool, w io.Writer) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		mu:        &sync.Mutex{},
		writer:    w,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter("", nil, io.Discard)
}

// WithComponent returns a logger sharing the writer under a new component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		mu:        l.mu,
		writer:    l.writer,
	}
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose()
}

// Debug logs debug messages (verbose only)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log("DEBUG", msg, nil, args...)
	}
}

// Info logs informational messages (verbose only)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log("INFO", msg, nil, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log("WARN", msg, nil, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log("ERROR", msg, nil, args...)
}

// DebugWithFields logs a debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs an info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log("INFO", msg, fields, args...)
	}
}

// WarnWithFields logs a warning with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log("WARN", msg, fields, args...)
}

// Write lets the logger act as an io.Writer for libraries that want one.
// Each write becomes an INFO line when verbose.
func (l *Logger) Write(p []byte) (int, error) {
	if l.isVerbose() {
		l.log("INFO", "%s", nil, strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

func (l *Logger) log(level, msg string, fields []Field, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] ", time.Now().Format("15:04:05.000"), level, component)
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	// Nothing sensible to do if the log sink itself fails.
	_, _ = io.WriteString(l.writer, b.String())
}
