package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Service is attached to every record so API and CLI logs can share a sink.
const Service = "portfolioapi"

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Build returns a zap logger at level. Development selects the console
// encoder and stack traces on warnings; otherwise records are JSON.
func Build(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": Service}
	return cfg.Build()
}

// Init builds the global logger. Only the first call has an effect.
func Init(level string, development bool) error {
	var err error
	once.Do(func() {
		globalLogger, err = Build(level, development)
	})
	return err
}

// Get returns the global logger, or a no-op logger before Init.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// Sync flushes buffered records.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}
