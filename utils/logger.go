package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. It discards output until
// InitLogger runs so packages can log safely from tests.
var Logger = zap.NewNop()

// InitLogger builds a production JSON logger at the given level
// ("debug", "info", "warn", "error").
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Logger = logger
	return nil
}

// SyncLogger flushes buffered entries; call it before the process exits.
func SyncLogger() {
	_ = Logger.Sync()
}
