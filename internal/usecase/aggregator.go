// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-card/internal/domain"
	"github.com/naka-gawa/github-card/internal/gateway"
)

// recentWindowDays is the trailing window for the recent commit count.
const recentWindowDays = 30

// Aggregator is the use case for aggregating GitHub stats.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher  gateway.Fetcher
	logger   *log.Logger
	now      func() time.Time
	location *time.Location
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithLocation sets the time zone used to bucket push times into weekdays. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) { a.location = loc }
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches the profile, its repositories and the recent commit count concurrently and
// derives the card stats. A profile or repository failure fails the whole call, as does a transport
// failure of the commit count; a failed profile lookup always satisfies
// errors.Is(err, domain.ErrProfileNotFound). Any other commit count failure yields a zero count with
// Stats.CommitsUnavailable set.
func (a *Aggregator) Aggregate(ctx context.Context, username string) (*domain.Result, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrProfileNotFound)
	}
	a.logger.Debug("Starting aggregation", "user", username)

	since := a.now().AddDate(0, 0, -recentWindowDays)

	var (
		profile            *domain.Profile
		repos              []domain.RepositorySummary
		commits            int
		commitsUnavailable bool
		profileErr         error
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		profile, profileErr = a.fetcher.FetchProfile(egCtx, username)
		return profileErr
	})

	eg.Go(func() error {
		var err error
		repos, err = a.fetcher.FetchRepositories(egCtx, username)
		return err
	})

	// Only transport failures of the commit count are fatal; a rejected or throttled search
	// leaves the count empty.
	eg.Go(func() error {
		var err error
		commits, err = a.fetcher.CountRecentCommits(egCtx, username, since)
		if err == nil || errors.Is(err, domain.ErrNetworkFailure) || errors.Is(err, context.Canceled) {
			return err
		}
		a.logger.Warn("Recent commit count unavailable", "user", username, "err", err)
		commits, commitsUnavailable = 0, true
		return nil
	})

	err := eg.Wait()
	if profileErr != nil && !errors.Is(profileErr, context.Canceled) {
		a.logger.Debug("Profile lookup failed", "user", username, "err", profileErr)
		if errors.Is(profileErr, domain.ErrProfileNotFound) {
			return nil, profileErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProfileNotFound, profileErr)
	}
	if err != nil {
		return nil, err
	}

	result := &domain.Result{
		Profile: *profile,
		Stats:   Summarize(repos, commits, a.location),
	}
	result.Stats.CommitsUnavailable = commitsUnavailable
	a.logger.Debug("Aggregation complete", "user", username, "repos", result.Stats.TotalRepos)
	return result, nil
}
