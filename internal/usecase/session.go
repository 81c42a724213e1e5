package usecase

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3-lines-studio/sfcstyles/internal/core"
)

var ErrConfigAlreadyResolved = errors.New("build config already resolved")

// Session owns all state of one build: issued tokens, extraction records and
// the resolved config. A new session is needed for every build.
type Session struct {
	id          string
	fs          FileSystem
	logger      *zap.Logger
	tokens      *core.TokenGenerator
	registry    *core.Registry
	transformer *core.Transformer

	mu       sync.RWMutex
	config   core.ResolvedBuildConfig
	resolved bool
}

type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger *zap.Logger
	rng    *rand.Rand
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

func WithRand(rng *rand.Rand) SessionOption {
	return func(o *sessionOptions) {
		o.rng = rng
	}
}

func NewSession(fs FileSystem, opts ...SessionOption) *Session {
	options := sessionOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}

	var tokenOpts []core.TokenOption
	if options.rng != nil {
		tokenOpts = append(tokenOpts, core.WithRand(options.rng))
	}

	id := uuid.NewString()
	tokens := core.NewTokenGenerator(tokenOpts...)
	registry := core.NewRegistry()

	return &Session{
		id:          id,
		fs:          fs,
		logger:      options.logger.With(zap.String("session", id)),
		tokens:      tokens,
		registry:    registry,
		transformer: core.NewTransformer(registry, tokens),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ConfigResolved(cfg core.ResolvedBuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved {
		return ErrConfigAlreadyResolved
	}
	s.config = cfg.WithDefaults()
	s.resolved = true

	s.logger.Debug("build config resolved",
		zap.String("root", s.config.Root),
		zap.String("outDir", s.config.OutDir),
		zap.String("libraryEntry", s.config.LibraryEntry()))
	return nil
}

func (s *Session) Config() (core.ResolvedBuildConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.resolved
}

// Transform is the per-unit hook. A nil result leaves the unit to the rest of
// the pipeline.
func (s *Session) Transform(code, id string) (*core.TransformResult, error) {
	cfg, _ := s.Config()

	result, err := s.transformer.Transform(code, id, cfg)
	if err != nil {
		s.logger.Error("transform failed", zap.String("unit", id), zap.Error(err))
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	switch {
	case result.Kind == core.UnitCode && !result.Rewritten:
		s.logger.Debug("no export call rewritten", zap.String("unit", id), zap.String("component", result.UnitName))
	default:
		s.logger.Debug("unit transformed",
			zap.String("unit", id),
			zap.String("component", result.UnitName),
			zap.Stringer("kind", result.Kind))
	}

	return result, nil
}

func (s *Session) Records() []core.ExtractionRecord {
	return s.registry.Records()
}
