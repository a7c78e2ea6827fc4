// Package log is dua's leveled, structured logger. It is a thin layer over
// logrus that keeps a package-level logger for the common case and
// field-carrying loggers for scoped context.
package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"dua/internal/errors"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput sends log lines to w
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyLevel: "level",
			},
		})
	}
}

// WithFile appends log lines to the file at path. If the file cannot be
// opened the logger keeps its previous output and reports the problem there.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.entry.WithError(err).Warn("cannot open log file")
			return
		}
		l.file = f
		l.base.SetOutput(f)
	}
}

// Logger writes leveled log lines with attached fields
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a Logger writing text lines to stderr
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{base: base, entry: logrus.NewEntry(base)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	Close()
	logger = NewLogger(opts...)
}

// Close releases the log file of the package-level logger, if any
func Close() {
	if logger != nil && logger.file != nil {
		logger.file.Close()
		logger.file = nil
	}
}

// SetDebug toggles debug output for every logger
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a logger carrying fields in addition to the receiver's
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), file: l.file}
}

func (l *Logger) Info(msg string) { l.entry.Info(msg) }

func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *Logger) Warn(msg string) { l.entry.Warn(msg) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *Logger) Error(msg string) { l.entry.Error(msg) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs only when debug output is enabled
func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.entry.Debug(msg)
	}
}

// Debugf logs a formatted message only when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

// LogWithFields returns the package-level logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError attaches the error and, for application errors, its kind and
// subject (path or parameter).
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error())}

	var scanErr *errors.ScanError
	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var renderErr *errors.RenderError
	var appErr *errors.ApplicationError
	switch {
	case errors.As(err, &scanErr):
		fields = append(fields, F("error_kind", int(scanErr.Kind())))
		if scanErr.Path() != "" {
			fields = append(fields, F("path", scanErr.Path()))
		}
	case errors.As(err, &fileErr):
		fields = append(fields, F("error_kind", int(fileErr.Kind())), F("path", fileErr.Path()))
	case errors.As(err, &configErr):
		fields = append(fields, F("error_kind", int(configErr.Kind())), F("param", configErr.Param()))
	case errors.As(err, &renderErr):
		fields = append(fields, F("error_kind", int(renderErr.Kind())))
	case errors.As(err, &appErr):
		fields = append(fields, F("error_kind", int(appErr.Kind())))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func Info(msg string) { logger.Info(msg) }

func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

func Warn(msg string) { logger.Warn(msg) }

func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

func Error(msg string) { logger.Error(msg) }

func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// Debug logs a message when debug output is enabled
func Debug(msg string) { logger.Debug(msg) }

// Debugf logs a formatted message when debug output is enabled
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// Discard silences the package-level logger
func Discard() {
	Configure(WithOutput(io.Discard))
}
