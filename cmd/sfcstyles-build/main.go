package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/sfcstyles"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/config"
)

var (
	configPath string
	outDir     string
	libEntry   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sfcstyles-build [entry...]",
	Short: "Bundle compiled components and inject their styles on first render",
	Long: `Bundles the given entry points with esbuild. Style resources of compiled
components are absorbed during bundling and appended to the emitted
artifacts once the bundle is written, together with a runtime that
injects them into the document head the first time a component renders.

Entry points default to entryPoints in sfcstyles.yaml.`,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to "+config.DefaultFileName+" (default: nearest one above the working directory)")
	rootCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory relative to the project root")
	rootCmd.Flags().StringVar(&libEntry, "lib-entry", "", "library entry path passed through untouched")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging, overriding logLevel")
}

func findConfig(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Join(startDir, config.DefaultFileName)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		path = findConfig(cwd)
	}

	entries := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve entry %s: %w", arg, err)
		}
		entries = append(entries, abs)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := sfcstyles.Build(ctx, sfcstyles.BuildInput{
		ConfigPath:  path,
		EntryPoints: entries,
		OutDir:      outDir,
		LibEntry:    libEntry,
		Verbose:     verbose,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	})
	if result.Error != nil {
		return result.Error
	}
	if !result.Success {
		return fmt.Errorf("build finished with errors")
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
