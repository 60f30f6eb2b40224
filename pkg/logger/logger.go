// Package logger builds the shared zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger at the level named by APP_LOG_LEVEL
// (debug/info/warn/error, default info).
func New() *zap.Logger {
	level := zapcore.InfoLevel
	if v := os.Getenv("APP_LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		// Production config only fails on bad output paths, which we don't set.
		return zap.NewNop()
	}
	return logger
}
