// Package logger builds the process-wide zap logger and carries
// request-scoped loggers through contexts.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger for the named environment. prod emits JSON;
// local, dev, and docker emit console output. An optional non-empty level
// (debug, info, warn, error) overrides the environment default.
func NewLogger(env string, level ...string) (*zap.Logger, error) {
	cfg, err := baseConfig(env)
	if err != nil {
		return nil, err
	}

	if len(level) > 0 && level[0] != "" {
		parsed, err := zapcore.ParseLevel(level[0])
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

func baseConfig(env string) (zap.Config, error) {
	switch env {
	case "prod":
		return zap.NewProductionConfig(), nil
	case "local", "dev", "docker":
		return zap.NewDevelopmentConfig(), nil
	default:
		return zap.Config{}, fmt.Errorf("unknown environment %q for logger", env)
	}
}
