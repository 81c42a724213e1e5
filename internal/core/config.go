package core

import (
	"errors"
	"path/filepath"
)

const DefaultOutDir = "dist"

var ErrConfigNotResolved = errors.New("build config not resolved")

type LibraryConfig struct {
	Entry string
}

// ResolvedBuildConfig is captured once per build and never mutated.
type ResolvedBuildConfig struct {
	Root    string
	OutDir  string
	Library *LibraryConfig
}

func (c ResolvedBuildConfig) WithDefaults() ResolvedBuildConfig {
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Library != nil {
		lib := *c.Library
		c.Library = &lib
	}
	return c
}

func (c ResolvedBuildConfig) ArtifactPath(fileName string) string {
	outDir := c.OutDir
	if outDir == "" {
		outDir = DefaultOutDir
	}
	if filepath.IsAbs(fileName) {
		return filepath.Clean(fileName)
	}
	if filepath.IsAbs(outDir) {
		return filepath.Join(outDir, fileName)
	}
	return filepath.Join(c.Root, outDir, fileName)
}

func (c ResolvedBuildConfig) LibraryEntry() string {
	if c.Library == nil {
		return ""
	}
	return c.Library.Entry
}
