// Package sfcstyles defers component style injection to the end of a build.
//
// During bundling each compiled component's style resource is absorbed and
// its export call is rewritten to carry a placeholder marker. Once the bundle
// is on disk every marker is resolved into the captured style text and a
// small runtime that injects it into the document head on first render.
package sfcstyles

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/zap"

	"github.com/3-lines-studio/sfcstyles/internal/adapters/esbuild"
	"github.com/3-lines-studio/sfcstyles/internal/adapters/fs"
	"github.com/3-lines-studio/sfcstyles/internal/core"
	"github.com/3-lines-studio/sfcstyles/internal/usecase"
)

type Session = usecase.Session

type ExtractionRecord = core.ExtractionRecord

type ResolvedBuildConfig = core.ResolvedBuildConfig

type LibraryConfig = core.LibraryConfig

type WriteBundleInput = usecase.WriteBundleInput

type WriteBundleOutput = usecase.WriteBundleOutput

var (
	ErrTokenExhausted    = core.ErrTokenExhausted
	ErrConfigNotResolved = core.ErrConfigNotResolved
)

// NewSession starts a build session backed by the local file system.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return usecase.NewSession(fs.NewOSFileSystem(), usecase.WithLogger(logger))
}

// Plugin returns an esbuild plugin feeding loaded units through session.
// Call session.WriteBundle once the bundle has been written.
func Plugin(session *Session, libraryEntry string) api.Plugin {
	return esbuild.NewPlugin(session, fs.NewOSFileSystem(), libraryEntry).Plugin()
}
