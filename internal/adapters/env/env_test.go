package env

import "testing"

func TestDetectOverrides(t *testing.T) {
	t.Setenv(OutDirVar, " public ")
	t.Setenv(LogLevelVar, "debug")
	t.Setenv(LibEntryVar, "")

	got := DetectOverrides()
	if got.OutDir != "public" {
		t.Errorf("Expected OutDir public, got %q", got.OutDir)
	}
	if got.LogLevel != "debug" {
		t.Errorf("Expected LogLevel debug, got %q", got.LogLevel)
	}
	if got.LibEntry != "" {
		t.Errorf("Expected empty LibEntry, got %q", got.LibEntry)
	}
}
