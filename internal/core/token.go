package core

import (
	"errors"
	"math/rand/v2"
	"sync"
)

const (
	TokenAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	TokenLength      = 8
	TokenMaxAttempts = 10
)

var ErrTokenExhausted = errors.New("failed to generate a placeholder id")

// TokenGenerator issues short tokens that are unique for its lifetime.
type TokenGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	issued map[string]struct{}
}

type TokenOption func(*TokenGenerator)

func WithRand(rng *rand.Rand) TokenOption {
	return func(g *TokenGenerator) {
		g.rng = rng
	}
}

func NewTokenGenerator(opts ...TokenOption) *TokenGenerator {
	g := &TokenGenerator{
		issued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

func (g *TokenGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, TokenLength)
	for attempt := 0; attempt < TokenMaxAttempts; attempt++ {
		for i := range buf {
			buf[i] = TokenAlphabet[g.rng.IntN(len(TokenAlphabet))]
		}
		token := string(buf)
		if _, taken := g.issued[token]; taken {
			continue
		}
		g.issued[token] = struct{}{}
		return token, nil
	}
	return "", ErrTokenExhausted
}

func (g *TokenGenerator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}
