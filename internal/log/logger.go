// Package log provides structured logging for treeside, backed by logrus.
// The terminal belongs to the TUI while the sidebar runs, so the default
// sink is a log file under the user cache directory; output is discarded
// until Configure or Setup is called.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"treeside/internal/errors"
)

// Field is a single structured logging field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a structured logging field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger plus the file it writes to, if any
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput directs log output to the given writer
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.log.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON formatting
func WithJSON() Option {
	return func(l *Logger) {
		l.log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithFile directs log output to the named file, creating it if needed.
// A file that cannot be opened leaves the previous output in place.
func WithFile(path string) Option {
	return func(l *Logger) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		if l.file != nil {
			l.file.Close()
		}
		l.file = f
		l.log.SetOutput(f)
	}
}

// NewLogger creates a logger with the given options applied
func NewLogger(opts ...Option) *Logger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	lg.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l := &Logger{log: lg}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var logger = NewLogger()

// Configure applies options to the package-level logger
func Configure(opts ...Option) {
	for _, opt := range opts {
		opt(logger)
	}
}

// Setup points the package-level logger at the standard log file under the
// user cache directory. Failure is silent; logging stays discarded.
func Setup() {
	cache, err := os.UserCacheDir()
	if err != nil {
		return
	}
	Configure(WithFile(filepath.Join(cache, "treeside", "treeside.log")))
}

// Close releases the log file held by the package-level logger
func Close() {
	if logger.file != nil {
		logger.file.Close()
		logger.file = nil
		logger.log.SetOutput(io.Discard)
	}
}

// SetDebug toggles debug-level logging on the package-level logger
func SetDebug(debug bool) {
	if debug {
		logger.log.SetLevel(logrus.DebugLevel)
	} else {
		logger.log.SetLevel(logrus.InfoLevel)
	}
}

// With returns an entry carrying the given fields
func (l *Logger) With(fields ...Field) *logrus.Entry {
	entry := logrus.NewEntry(l.log)
	for _, f := range fields {
		entry = entry.WithField(f.Key, f.Value)
	}
	return entry
}

// Info logs an info message on the wrapped logger
func (l *Logger) Info(msg string) { l.log.Info(msg) }

// Infof logs a formatted info message on the wrapped logger
func (l *Logger) Infof(format string, args ...interface{}) { l.log.Infof(format, args...) }

// Warn logs a warning on the wrapped logger
func (l *Logger) Warn(msg string) { l.log.Warn(msg) }

// Error logs an error message on the wrapped logger
func (l *Logger) Error(msg string) { l.log.Error(msg) }

// Debug logs a debug message on the wrapped logger
func (l *Logger) Debug(msg string) { l.log.Debug(msg) }

// Info logs an info message
func Info(format string, args ...interface{}) {
	logger.log.Infof(format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	logger.log.Debugf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	logger.log.Warnf(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	logger.log.Errorf(format, args...)
}

// LogWithFields returns an entry on the package-level logger carrying fields
func LogWithFields(fields ...Field) *logrus.Entry {
	return logger.With(fields...)
}

// LogWithError returns an entry annotated with the error and, where the
// error is one of the treeside kinds, its kind and associated path/program.
func LogWithError(err error) *logrus.Entry {
	entry := logrus.NewEntry(logger.log).WithField("error", err)
	if err == nil {
		return entry
	}

	var kinded interface {
		error
		Kind() errors.ErrorKind
	}
	if errors.As(err, &kinded) {
		entry = entry.WithField("error_kind", int(kinded.Kind()))
	}

	var accessErr *errors.AccessError
	if errors.As(err, &accessErr) {
		entry = entry.WithField("path", accessErr.Path())
	}
	var spawnErr *errors.SpawnError
	if errors.As(err, &spawnErr) {
		entry = entry.WithField("program", spawnErr.Program())
	}
	var persistErr *errors.PersistenceError
	if errors.As(err, &persistErr) {
		entry = entry.WithField("path", persistErr.Path())
	}
	return entry
}

// LogError is a convenience for logging an error with a message
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}
