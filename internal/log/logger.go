// Package log is comicsort's structured logger. It wraps logrus behind a small
// API shared by every package: package-level helpers for the common case and
// Logger values carrying fields for the rest.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"comicsort/internal/errors"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out      io.Writer
	json     bool
	filePath string
	fields   []Field
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to JSON lines.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile mirrors log lines into the file at path, appending to it.
func WithFile(path string) Option {
	return func(o *options) { o.filePath = path }
}

// WithFields attaches fields to every line the Logger writes.
func WithFields(fields ...Field) Option {
	return func(o *options) { o.fields = append(o.fields, fields...) }
}

// Logger writes structured log lines.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a Logger writing to stdout unless overridden by opts.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	var file *os.File
	out := o.out
	if o.filePath != "" {
		f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.filePath, err)
		} else {
			file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   file != nil || !isTerminal(o.out),
		})
	}

	l := &Logger{entry: logrus.NewEntry(base), file: file}
	return l.With(o.fields...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Close releases the log file opened through WithFile, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Shutdown closes the package-level logger's file.
func Shutdown() error {
	return logger.Close()
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a Logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError returns a Logger annotated with err and its classification.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// WithContext attaches ctx to the underlying entry.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var mappingErr *errors.MappingError
	if errors.As(err, &mappingErr) {
		if mappingErr.Mapping() != "" {
			fields = append(fields, F("mapping", mappingErr.Mapping()))
		}
		if mappingErr.File() != "" {
			fields = append(fields, F("file", mappingErr.File()))
		}
	}
	return fields
}

func (l *Logger) Info(msg string)  { l.log(2, logrus.InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(2, logrus.WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(2, logrus.ErrorLevel, msg) }

// Debug logs msg only when debug output is enabled.
func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.log(2, logrus.DebugLevel, msg)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(2, logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(2, logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.log(2, logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

// log records the caller skip frames above itself.
func (l *Logger) log(skip int, level logrus.Level, msg string) {
	entry := l.entry
	if _, file, line, ok := runtime.Caller(skip); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// LogWithFields returns the package-level logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package-level logger annotated with err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).log(2, logrus.ErrorLevel, msg)
}

func Info(msg string)  { logger.log(2, logrus.InfoLevel, msg) }
func Warn(msg string)  { logger.log(2, logrus.WarnLevel, msg) }
func Error(msg string) { logger.log(2, logrus.ErrorLevel, msg) }

func Debug(msg string) {
	if isDebug.Load() {
		logger.log(2, logrus.DebugLevel, msg)
	}
}

func Infof(format string, args ...interface{}) {
	logger.log(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...interface{}) {
	logger.log(2, logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	logger.log(2, logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.log(2, logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}
