package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/github-card/internal/domain"
)

// StatsSource produces a Result for a username. *Aggregator satisfies it.
type StatsSource interface {
	Aggregate(ctx context.Context, username string) (*domain.Result, error)
}

// Session holds the result currently shown on the card.
//
// Every Load is stamped with a generation. Only the most recently issued generation may replace
// the current result; earlier calls that resolve later are discarded with domain.ErrStaleResult.
type Session struct {
	source StatsSource
	logger *log.Logger

	mu      sync.Mutex
	issued  uint64
	current *domain.Result
}

// NewSession creates an empty Session.
func NewSession(source StatsSource, logger *log.Logger) *Session {
	return &Session{source: source, logger: logger}
}

// Load aggregates stats for username and commits them if no newer Load was issued meanwhile.
// A failed Load leaves the current result untouched.
func (s *Session) Load(ctx context.Context, username string) (*domain.Result, error) {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	result, err := s.source.Aggregate(ctx, username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.issued {
		s.logger.Debug("Discarding stale result", "user", username, "generation", gen, "latest", s.issued)
		return nil, fmt.Errorf("%w: generation %d", domain.ErrStaleResult, gen)
	}
	if err != nil {
		return nil, err
	}
	s.current = result
	return result, nil
}

// Current returns the committed result, or nil before the first successful Load.
func (s *Session) Current() *domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
