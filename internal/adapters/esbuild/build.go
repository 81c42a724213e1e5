package esbuild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
	"github.com/3-lines-studio/sfcstyles/internal/core"
	"github.com/3-lines-studio/sfcstyles/internal/usecase"
)

var ErrBuildFailed = errors.New("bundling failed")

type BuildOptions struct {
	EntryPoints []string
	Format      string
	Minify      bool
	External    []string
}

type BuildResult struct {
	Outputs  []string
	Bundle   usecase.WriteBundleOutput
	Warnings []string
	Units    map[core.UnitKind]int
}

// metafile mirrors the parts of esbuild's metafile JSON we read.
type metafile struct {
	Outputs map[string]struct {
		Bytes      int    `json:"bytes"`
		EntryPoint string `json:"entryPoint,omitempty"`
	} `json:"outputs"`
}

// Build bundles with the plugin installed, then finalizes the written
// artifacts. Identifiers are never minified: finalization matches helper
// names and markers textually.
func Build(ctx context.Context, session Session, fsys fs.FileSystem, cfg core.ResolvedBuildConfig, opts BuildOptions) (*BuildResult, error) {
	if err := session.ConfigResolved(cfg); err != nil && !errors.Is(err, usecase.ErrConfigAlreadyResolved) {
		return nil, err
	}
	cfg, _ = session.Config()

	plugin := NewPlugin(session, fsys, cfg.LibraryEntry())

	buildCtx, ctxErr := api.Context(api.BuildOptions{
		AbsWorkingDir:     cfg.Root,
		EntryPoints:       opts.EntryPoints,
		Outdir:            cfg.OutDir,
		Bundle:            true,
		Write:             true,
		Metafile:          true,
		Format:            formatFor(opts.Format),
		External:          opts.External,
		MinifyWhitespace:  opts.Minify,
		MinifySyntax:      opts.Minify,
		MinifyIdentifiers: false,
		Sourcemap:         api.SourceMapNone,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{plugin.Plugin()},
	})
	if ctxErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, joinMessages(ctxErr.Errors))
	}
	defer buildCtx.Dispose()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			buildCtx.Cancel()
		case <-done:
		}
	}()
	result := buildCtx.Rebuild()
	close(done)

	if err := plugin.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, joinMessages(result.Errors))
	}

	outputs, err := scriptOutputs(result.Metafile, cfg)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Outputs:  outputs,
		Bundle:   session.WriteBundle(ctx, usecase.WriteBundleInput{FileNames: outputs}),
		Warnings: messageTexts(result.Warnings),
		Units: map[core.UnitKind]int{
			core.UnitStyle:       plugin.Count(core.UnitStyle),
			core.UnitCode:        plugin.Count(core.UnitCode),
			core.UnitPassthrough: plugin.Count(core.UnitPassthrough),
		},
	}, nil
}

// scriptOutputs lists the written JavaScript artifacts relative to the
// output directory.
func scriptOutputs(raw string, cfg core.ResolvedBuildConfig) ([]string, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metafile: %w", err)
	}

	outDir := cfg.ArtifactPath("")
	var outputs []string
	for key := range meta.Outputs {
		switch filepath.Ext(key) {
		case ".js", ".mjs", ".cjs":
		default:
			continue
		}

		abs := filepath.FromSlash(key)
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cfg.Root, abs)
		}
		rel, err := filepath.Rel(outDir, abs)
		if err != nil {
			return nil, fmt.Errorf("output %s outside %s: %w", key, outDir, err)
		}
		outputs = append(outputs, filepath.ToSlash(rel))
	}
	sort.Strings(outputs)
	return outputs, nil
}

func formatFor(format string) api.Format {
	switch strings.ToLower(format) {
	case "cjs":
		return api.FormatCommonJS
	case "iife":
		return api.FormatIIFE
	default:
		return api.FormatESModule
	}
}

func messageTexts(msgs []api.Message) []string {
	texts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		text := msg.Text
		if msg.Location != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
		}
		texts = append(texts, text)
	}
	return texts
}

func joinMessages(msgs []api.Message) string {
	return strings.Join(messageTexts(msgs), "\n")
}
