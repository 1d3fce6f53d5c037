package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry so shipped logs can be filtered by process
const ServiceName = "bmg-store"

// New creates a structured logger writing to stdout. Production emits JSON;
// anything else gets the colored console encoder.
func New(env, level string) (*zap.Logger, error) {
	lvl, err := parseLevel(env, level)
	if err != nil {
		return nil, err
	}
	return build(env, lvl, zapcore.Lock(os.Stdout)), nil
}

// NewWithDefaults creates a logger from SERVER_ENV and LOG_LEVEL
func NewWithDefaults() *zap.Logger {
	env := os.Getenv("SERVER_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := New(env, os.Getenv("LOG_LEVEL"))
	if err != nil {
		// Fallback to basic logger
		logger, _ = zap.NewProduction()
	}

	return logger
}

func parseLevel(env, level string) (zapcore.Level, error) {
	if level == "" {
		if env == "production" {
			return zapcore.InfoLevel, nil
		}
		return zapcore.DebugLevel, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func encoderConfig(env string) zapcore.EncoderConfig {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func build(env string, level zapcore.Level, out zapcore.WriteSyncer) *zap.Logger {
	cfg := encoderConfig(env)

	var encoder zapcore.Encoder
	if env == "production" {
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(level))

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.String("service", ServiceName))
}
