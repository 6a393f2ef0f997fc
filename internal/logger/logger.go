package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured, component-scoped logging.
// Message text submitted for analysis must never be passed to it.
type Logger struct {
	component string
	zl        *zap.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Options configures the root logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// File receives log output. Empty means stderr.
	File string

	// Verbose forces debug level
	Verbose bool
}

// Build creates the root logger. The returned func flushes buffered entries.
func Build(opts Options) (*Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	config.DisableStacktrace = true
	config.Sampling = nil

	output := "stderr"
	if opts.File != "" {
		output = opts.File
	}
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{output}

	zl, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	l := &Logger{component: "main", zl: zl}
	return l, func() { _ = zl.Sync() }, nil
}

// New wraps an existing zap logger
func New(component string, zl *zap.Logger) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{component: component, zl: zl}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return New("", zap.NewNop())
}

// ParseLevel maps a config level name to a zap level. Empty means warn.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.WarnLevel, fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", name)
	}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{component: component, zl: l.zl}
}

// Component returns the component name
func (l *Logger) Component() string {
	return l.component
}

// Zap exposes the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Debug logs debug messages (only when verbose or level=debug)
func (l *Logger) Debug(msg string, fields ...Field) {
	l.zl.Debug(msg, l.convert(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...Field) {
	l.zl.Info(msg, l.convert(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...Field) {
	l.zl.Warn(msg, l.convert(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...Field) {
	l.zl.Error(msg, l.convert(fields)...)
}

func (l *Logger) convert(fields []Field) []zap.Field {
	component := l.component
	if component == "" {
		component = "main"
	}

	zf := make([]zap.Field, 0, len(fields)+1)
	zf = append(zf, zap.String("component", component))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			zf = append(zf, zap.NamedError(f.Key, v))
		case time.Duration:
			zf = append(zf, zap.Duration(f.Key, v))
		default:
			zf = append(zf, zap.Any(f.Key, v))
		}
	}
	return zf
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
