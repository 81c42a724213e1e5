package sfcstyles

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/3-lines-studio/sfcstyles/internal/adapters/cli"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/config"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/esbuild"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/logging"
	"github.com/3-lines-studio/sfcstyles/internal/core"
	"github.com/3-lines-studio/sfcstyles/internal/usecase"
)

type BuildInput struct {
	ConfigPath  string
	EntryPoints []string
	OutDir      string
	LibEntry    string
	Verbose     bool
	Logger      *zap.Logger
	Stdout      io.Writer
	Stderr      io.Writer
}

type BuildOutput struct {
	Success bool
	Outputs []string
	Error   error
}

var newLogger = logging.New

// Build loads the configuration, bundles the entry points and finalizes the
// written artifacts. Artifacts that could not be finalized are reported but
// do not fail the build. Without input.Logger, logging follows the configured
// level, or debug when input.Verbose is set.
func Build(ctx context.Context, input BuildInput) BuildOutput {
	output := cli.NewOutput()
	if input.Stdout != nil && input.Stderr != nil {
		output = cli.NewOutputTo(input.Stdout, input.Stderr)
	}
	output.PrintHeader("SFC Styles Build")

	fsys := fs.NewOSFileSystem()
	cfg, err := config.Load(fsys, input.ConfigPath)
	if err != nil {
		return BuildOutput{Error: err}
	}
	if len(input.EntryPoints) > 0 {
		cfg.EntryPoints = input.EntryPoints
	}
	if input.OutDir != "" {
		cfg.OutDir = input.OutDir
	}
	if input.LibEntry != "" {
		cfg.Library.Entry = input.LibEntry
	}
	if len(cfg.EntryPoints) == 0 {
		return BuildOutput{Error: fmt.Errorf("no entry points configured")}
	}

	logger := input.Logger
	if logger == nil {
		logger, err = buildLogger(cfg.LogLevel, input.Verbose)
		if err != nil {
			return BuildOutput{Error: err}
		}
		defer func() { _ = logger.Sync() }()
	}

	resolved := cfg.Resolved()
	report := cli.NewBuildReport(output, resolved.ArtifactPath(""))
	if input.Stdout != nil && input.Stderr != nil {
		report.SetWriters(input.Stdout, input.Stderr)
	}

	session := usecase.NewSession(fsys, usecase.WithLogger(logger))

	output.PrintStep("📦", "Bundling %d entry points into %s", len(cfg.EntryPoints), resolved.ArtifactPath(""))
	step := report.StartStep("Bundling and finalizing")
	result, err := esbuild.Build(ctx, session, fsys, resolved, esbuild.BuildOptions{
		EntryPoints: cfg.EntryPoints,
		Format:      cfg.Format,
		Minify:      cfg.Minify,
		External:    cfg.External,
	})
	if err != nil {
		report.EndStep(step, false, err.Error())
		output.PrintError("%v", err)
		if errors.Is(err, core.ErrTokenExhausted) {
			return BuildOutput{Error: fmt.Errorf("placeholder ids exhausted: %w", err)}
		}
		return BuildOutput{Error: err}
	}
	report.EndStep(step, result.Bundle.Error == nil, "")
	if result.Bundle.Error != nil {
		report.AddError("finalize", "Bundle finalization stopped", []string{result.Bundle.Error.Error()})
	}

	report.SetComponentCount(len(session.Records()))
	report.SetArtifactCount(len(result.Bundle.Finalized))
	report.SetUnitCounts(result.Units[core.UnitCode], result.Units[core.UnitStyle], result.Units[core.UnitPassthrough])
	for _, failure := range result.Bundle.Failed {
		report.AddWarning(failure.FileName, "Artifact kept unresolved placeholder markers", []string{failure.Err.Error()})
	}
	for _, warning := range result.Warnings {
		report.AddWarning("esbuild", "Bundler warning", []string{warning})
	}

	report.Render()
	if len(session.Records()) == 0 {
		output.PrintWarning("No component styles were found")
	}
	for _, fileName := range result.Bundle.Finalized {
		output.PrintFile(fileName)
	}

	return BuildOutput{
		Success: !report.HasFailures(),
		Outputs: result.Outputs,
		Error:   result.Bundle.Error,
	}
}

func buildLogger(name string, verbose bool) (*zap.Logger, error) {
	level, err := logging.Level(name, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
