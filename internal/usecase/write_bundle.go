package usecase

import (
	"context"
	"fmt"
	iofs "io/fs"

	"go.uber.org/zap"

	"github.com/3-lines-studio/sfcstyles/internal/core"
)

const artifactPerm iofs.FileMode = 0644

type WriteBundleInput struct {
	FileNames []string
}

type ArtifactFailure struct {
	FileName string
	Path     string
	Err      error
}

type WriteBundleOutput struct {
	Finalized []string
	Failed    []ArtifactFailure
	Error     error
}

// WriteBundle finalizes every artifact already written by the host pipeline.
// A failing artifact is logged and skipped.
func (s *Session) WriteBundle(ctx context.Context, input WriteBundleInput) WriteBundleOutput {
	cfg, ok := s.Config()
	if !ok {
		return WriteBundleOutput{Error: core.ErrConfigNotResolved}
	}

	records := s.registry.Records()
	output := WriteBundleOutput{}

	for _, fileName := range input.FileNames {
		if err := ctx.Err(); err != nil {
			output.Error = err
			return output
		}

		path := cfg.ArtifactPath(fileName)
		if err := s.finalizeArtifact(path, records); err != nil {
			s.logger.Error("failed to finalize artifact",
				zap.String("artifact", fileName),
				zap.String("path", path),
				zap.Error(err))
			output.Failed = append(output.Failed, ArtifactFailure{FileName: fileName, Path: path, Err: err})
			continue
		}
		output.Finalized = append(output.Finalized, fileName)
	}

	s.logger.Info("bundle finalized",
		zap.Int("artifacts", len(output.Finalized)),
		zap.Int("failed", len(output.Failed)),
		zap.Int("components", len(records)))

	return output
}

func (s *Session) finalizeArtifact(path string, records []core.ExtractionRecord) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	text := core.FinalizeArtifact(string(data), records)
	if err := s.fs.WriteFile(path, []byte(text), artifactPerm); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}
