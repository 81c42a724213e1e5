package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{name: "default", want: DefaultLevel},
		{name: "configured", level: "debug", want: zapcore.DebugLevel},
		{name: "upper case", level: "ERROR", want: zapcore.ErrorLevel},
		{name: "verbose wins", level: "error", verbose: true, want: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Level(tt.level, tt.verbose)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLevelInvalid(t *testing.T) {
	if _, err := Level("loud", false); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestNewHonoursLevel(t *testing.T) {
	logger, err := New(zapcore.DebugLevel)
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug enabled")
	}

	logger, err = New(zapcore.ErrorLevel)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Expected warn disabled at error level")
	}
}
