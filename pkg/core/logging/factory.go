// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating zap backed loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Defaults used by New, replaced once the configuration is loaded
	defaultConfig   = LoggerConfig{Level: "info", Format: "text"}
	defaultConfigMu sync.RWMutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: json)

	// Output writer (default: stderr, so command output on stdout stays clean)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// Configure sets the level, format and output that New applies
func Configure(cfg LoggerConfig) {
	defaultConfigMu.Lock()
	defer defaultConfigMu.Unlock()
	defaultConfig = cfg
}

// Logger wraps a zap logger with key/value logging methods
type Logger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
	name  string
}

// NewLogger creates a new logger from cfg
func NewLogger(cfg LoggerConfig) *Logger {
	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level).zapLevel())

	// Build output writer
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	// Determine format
	var encoder zapcore.Encoder
	if cfg.Format == "text" {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(cfg.ServiceName)

	return &Logger{zl: zl, level: level, name: cfg.ServiceName}
}

// NewFromZap wraps an existing zap logger
func NewFromZap(name string, zl *zap.Logger) *Logger {
	return &Logger{
		zl:    zl.Named(name),
		level: zap.NewAtomicLevelAt(zapcore.DebugLevel),
		name:  name,
	}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop(), level: zap.NewAtomicLevel(), name: "nop"}
}

// New creates a logger with the configured defaults
func New(name string) *Logger {
	defaultConfigMu.RLock()
	cfg := defaultConfig
	defaultConfigMu.RUnlock()

	cfg.ServiceName = name
	return NewLogger(cfg)
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// SetLevel changes the minimum level of this logger and its children
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// Named returns a child logger with name appended
func (l *Logger) Named(name string) *Logger {
	return &Logger{zl: l.zl.Named(name), level: l.level, name: l.name + "." + name}
}

// With returns a child logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{zl: l.zl.With(toFields(keysAndValues...)...), level: l.level, name: l.name}
}

// Zap exposes the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.zl.Debug(msg, toFields(keysAndValues...)...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.zl.Info(msg, toFields(keysAndValues...)...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.zl.Warn(msg, toFields(keysAndValues...)...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.zl.Error(msg, toFields(keysAndValues...)...)
}

// toFields converts key-value pairs to zap fields. Non-string keys and a
// trailing key without value are skipped.
func toFields(keysAndValues ...interface{}) []zap.Field {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
