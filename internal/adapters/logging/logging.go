package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultLevel = zapcore.WarnLevel

// Level picks the log level for a build. verbose always wins over the
// configured name; an empty name falls back to DefaultLevel.
func Level(name string, verbose bool) (zapcore.Level, error) {
	if verbose {
		return zapcore.DebugLevel, nil
	}
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func New(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
