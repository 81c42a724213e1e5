package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/3-lines-studio/sfcstyles/internal/adapters/env"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/logging"
	"github.com/3-lines-studio/sfcstyles/internal/core"
)

const DefaultFileName = "sfcstyles.yaml"

// Config is the on-disk build configuration.
type Config struct {
	Root        string        `yaml:"root"`
	OutDir      string        `yaml:"outDir"`
	EntryPoints []string      `yaml:"entryPoints"`
	Format      string        `yaml:"format"` // esm, cjs, iife
	Minify      bool          `yaml:"minify"`
	External    []string      `yaml:"external"`
	Library     LibraryConfig `yaml:"library"`
	LogLevel    string        `yaml:"logLevel"`
}

type LibraryConfig struct {
	Entry string `yaml:"entry"`
}

func DefaultConfig() *Config {
	return &Config{
		OutDir:   core.DefaultOutDir,
		Format:   "esm",
		LogLevel: "warn",
	}
}

// Load reads path if it exists, applies environment overrides and resolves
// Root against the config file's directory.
func Load(fsys fs.FileSystem, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" && fsys.FileExists(path) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyOverrides(env.DetectOverrides())

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if !filepath.IsAbs(cfg.Root) && path != "" {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", cfg.Root, err)
	}
	cfg.Root = abs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyOverrides(o env.Overrides) {
	if o.OutDir != "" {
		c.OutDir = o.OutDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LibEntry != "" {
		c.Library.Entry = o.LibEntry
	}
}

func (c *Config) Validate() error {
	if c.OutDir == "" {
		c.OutDir = core.DefaultOutDir
	}
	switch strings.ToLower(c.Format) {
	case "", "esm", "cjs", "iife":
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if _, err := logging.Level(c.LogLevel, false); err != nil {
		return err
	}
	return nil
}

// Resolved snapshots the config for a build session.
func (c *Config) Resolved() core.ResolvedBuildConfig {
	resolved := core.ResolvedBuildConfig{
		Root:   c.Root,
		OutDir: c.OutDir,
	}
	if c.Library.Entry != "" {
		resolved.Library = &core.LibraryConfig{Entry: c.Library.Entry}
	}
	return resolved.WithDefaults()
}
