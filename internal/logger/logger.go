// Package logger owns the process-wide zap logger. Handlers and services use
// the sugared form; the normalization pipeline takes a named structured child.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init builds the global logger once. "production" logs JSON at info level,
// "test" discards everything unless LOG_LEVEL is set, and anything else uses
// the colored development console. LOG_LEVEL overrides the level.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		return
	}
	set(build(env, os.Getenv("LOG_LEVEL")))
}

func build(env, level string) *zap.Logger {
	if env == "test" && level == "" {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("service", "companycrm"))
}

func set(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
}

// Replace swaps the global logger and returns a function restoring the
// previous one. Tests use it with zaptest/observer.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := base
	set(l)
	mu.Unlock()
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if prev == nil {
			base, sugar = nil, nil
			return
		}
		set(prev)
	}
}

func current() *zap.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		Init("development")
		mu.RLock()
		l = base
		mu.RUnlock()
	}
	return l
}

// Get returns the global sugared logger, initializing a development logger
// on first use.
func Get() *zap.SugaredLogger {
	return current().Sugar()
}

// Diagnostics is the logger handed to the normalization pipeline for
// malformed-field reports.
func Diagnostics() *zap.Logger {
	return current().Named("normalize")
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
