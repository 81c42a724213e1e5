package esbuild

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
	"github.com/3-lines-studio/sfcstyles/internal/core"
	"github.com/3-lines-studio/sfcstyles/internal/usecase"
)

const PluginName = "sfc-styles-inject"

const componentFilter = `\.vue`

// Session is the part of a build session the plugin drives.
type Session interface {
	ConfigResolved(cfg core.ResolvedBuildConfig) error
	Config() (core.ResolvedBuildConfig, bool)
	Transform(code, id string) (*core.TransformResult, error)
	WriteBundle(ctx context.Context, input usecase.WriteBundleInput) usecase.WriteBundleOutput
}

type Plugin struct {
	session      Session
	fs           fs.FileSystem
	libraryEntry string

	mu     sync.Mutex
	fatal  error
	counts map[core.UnitKind]int
}

func NewPlugin(session Session, fsys fs.FileSystem, libraryEntry string) *Plugin {
	return &Plugin{
		session:      session,
		fs:           fsys,
		libraryEntry: libraryEntry,
		counts:       make(map[core.UnitKind]int),
	}
}

func (p *Plugin) Plugin() api.Plugin {
	return api.Plugin{
		Name:  PluginName,
		Setup: p.setup,
	}
}

// Err returns the first error that must fail the whole build.
func (p *Plugin) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fatal
}

func (p *Plugin) Count(kind core.UnitKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[kind]
}

func (p *Plugin) setup(build api.PluginBuild) {
	initial := *build.InitialOptions

	build.OnStart(func() (api.OnStartResult, error) {
		if _, ok := p.session.Config(); ok {
			return api.OnStartResult{}, nil
		}
		err := p.session.ConfigResolved(resolveConfig(initial, p.libraryEntry))
		if err != nil && !errors.Is(err, usecase.ErrConfigAlreadyResolved) {
			return api.OnStartResult{}, err
		}
		return api.OnStartResult{}, nil
	})

	build.OnLoad(api.OnLoadOptions{Filter: p.filter(), Namespace: "file"}, p.load)
}

func (p *Plugin) filter() string {
	if p.libraryEntry == "" {
		return componentFilter
	}
	return componentFilter + "|" + regexp.QuoteMeta(filepath.ToSlash(p.libraryEntry))
}

func (p *Plugin) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	data, err := p.fs.ReadFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, fmt.Errorf("failed to read %s: %w", args.Path, err)
	}

	result, err := p.session.Transform(string(data), filepath.ToSlash(args.Path))
	if err != nil {
		p.fail(err)
		return api.OnLoadResult{}, err
	}
	if result == nil {
		return api.OnLoadResult{}, nil
	}

	p.mu.Lock()
	p.counts[result.Kind]++
	p.mu.Unlock()

	contents := result.Code
	resolveDir := filepath.Dir(args.Path)
	loader := loaderFor(args.Path)
	if result.Kind == core.UnitStyle {
		loader = api.LoaderJS
	}

	return api.OnLoadResult{
		PluginName: PluginName,
		Contents:   &contents,
		ResolveDir: resolveDir,
		Loader:     loader,
	}, nil
}

func (p *Plugin) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fatal == nil {
		p.fatal = err
	}
}

func loaderFor(path string) api.Loader {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

func resolveConfig(opts api.BuildOptions, libraryEntry string) core.ResolvedBuildConfig {
	cfg := core.ResolvedBuildConfig{
		Root:   opts.AbsWorkingDir,
		OutDir: opts.Outdir,
	}
	if cfg.OutDir == "" && opts.Outfile != "" {
		cfg.OutDir = filepath.Dir(opts.Outfile)
	}
	if libraryEntry != "" {
		cfg.Library = &core.LibraryConfig{Entry: libraryEntry}
	}
	return cfg.WithDefaults()
}
