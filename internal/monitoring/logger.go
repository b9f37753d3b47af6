// Package monitoring owns the process logger. Logf is the printf-style hook
// used across holdmap; L exposes the underlying zap logger for structured
// fields.
package monitoring

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Logf is the package-level diagnostic logger. It writes through the zap
// logger installed by Init or SetZap, and may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = zapLogf

func zapLogf(format string, v ...interface{}) {
	L().Sugar().Infof(format, v...)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Init builds a zap production logger at the named level ("debug", "info",
// "warn", "error"). verbose forces debug.
func Init(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetZap(l)
	return l, nil
}

// SetZap installs l as the process logger and routes Logf through it.
func SetZap(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	Logf = zapLogf
}

// L returns the current zap logger. It is never nil.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}
