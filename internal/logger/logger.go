package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production emits JSON with RFC3339
// timestamps for the log pipeline; local, dev and docker get colored
// console output. The level comes from the logging config; the
// VISEARCH_LOG_LEVEL environment variable wins over both when set, so a
// deployment can be bumped to debug without a config rollout.
func New(env, level string) (*zap.Logger, error) {
	if v := os.Getenv("VISEARCH_LOG_LEVEL"); v != "" {
		level = v
	}

	var cfg zap.Config
	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		opts = append(opts, zap.Fields(zap.String("service", "visearch")))
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("logger: unknown environment %q", env)
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logger: bad level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	l, err := cfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}
