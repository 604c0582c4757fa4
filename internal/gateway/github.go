// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/github-card/internal/cache"
	"github.com/naka-gawa/github-card/internal/domain"
)

// repoPageSize is the largest page GitHub serves; only the first page is read.
const repoPageSize = 100

// CommitSource selects where the recent commit count comes from.
type CommitSource string

const (
	// CommitSourceSearch counts commits through the commit search API.
	CommitSourceSearch CommitSource = "search"
	// CommitSourceGraphQL reads totalCommitContributions. It needs a credential and
	// falls back to search without one.
	CommitSourceGraphQL CommitSource = "graphql"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.RepositorySummary, error)
	CountRecentCommits(ctx context.Context, username string, since time.Time) (int, error)
}

// Options configures NewGitHubGateway.
type Options struct {
	// Token is consulted on every request. It may return "".
	Token        func() string
	CommitSource CommitSource
	// Store enables the response cache when non-nil and CacheTTL is positive.
	Store    cache.Store
	CacheTTL time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	commitSource  CommitSource
	token         func() string
	now           func() time.Time
	logger        *log.Logger
}

// contributionsQuery reads the commit contribution total for a window.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions githubv4.Int
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var base http.RoundTripper = rateLimitWaiter
	switch {
	case opts.Store != nil && opts.CacheTTL > 0:
		base = &cachingTransport{base: base, store: opts.Store, ttl: opts.CacheTTL, logger: logger}
	case opts.Store != nil:
		logger.Warn("Response cache disabled: TTL must be positive", "ttl", opts.CacheTTL)
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	httpClient := &http.Client{
		Transport: &credentialTransport{base: base, lookup: token},
		Timeout:   30 * time.Second,
	}
	source := opts.CommitSource
	if source == "" {
		source = CommitSourceSearch
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		commitSource:  source,
		token:         token,
		now:           time.Now,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debug("Fetching profile", "user", username)
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %q", domain.ErrProfileNotFound, username)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", classify(err))
	}
	return &domain.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Followers:   user.GetFollowers(),
		PublicRepos: user.GetPublicRepos(),
		CreatedAt:   user.GetCreatedAt().Time,
		Location:    user.GetLocation(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Blog:        user.GetBlog(),
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.RepositorySummary, error) {
	g.logger.Debug("Fetching repositories", "user", username)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "pushed",
		ListOptions: github.ListOptions{PerPage: repoPageSize},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", classify(err))
	}
	summaries := make([]domain.RepositorySummary, 0, len(repos))
	for _, repo := range repos {
		summary := domain.RepositorySummary{
			Name:     repo.GetName(),
			Stars:    repo.GetStargazersCount(),
			Forks:    repo.GetForksCount(),
			PushedAt: repo.GetPushedAt().Time,
		}
		if lang := repo.GetLanguage(); lang != "" {
			summary.Language = &lang
		}
		summaries = append(summaries, summary)
	}
	g.logger.Debug("Fetched repositories", "user", username, "count", len(summaries))
	return summaries, nil
}

// CountRecentCommits returns the number of commits authored by username since the given instant.
// The search query compares whole days, so the boundary date is included.
func (g *GitHubGateway) CountRecentCommits(ctx context.Context, username string, since time.Time) (int, error) {
	if g.commitSource == CommitSourceGraphQL && g.token() != "" {
		return g.countContributions(ctx, username, since)
	}
	query := fmt.Sprintf("author:%s committer-date:>=%s", username, since.UTC().Format("2006-01-02"))
	g.logger.Debug("Searching commits", "query", query)
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.restClient.Search.Commits(ctx, query, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search commits: %w", classify(err))
	}
	return result.GetTotal(), nil
}

func (g *GitHubGateway) countContributions(ctx context.Context, username string, since time.Time) (int, error) {
	g.logger.Debug("Querying commit contributions", "user", username)
	variables := map[string]interface{}{
		"login": githubv4.String(username),
		"from":  githubv4.DateTime{Time: since.UTC()},
		"to":    githubv4.DateTime{Time: g.now().UTC()},
	}
	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for contributions: %w", classify(err))
	}
	return int(q.User.ContributionsCollection.TotalCommitContributions), nil
}

// classify maps a client error onto the domain taxonomy, keeping the cause in the chain.
func classify(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var urlErr *url.Error
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr), isStatus(err, http.StatusTooManyRequests):
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	case errors.As(err, &respErr):
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	case errors.As(err, &urlErr), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
}

func isStatus(err error, status int) bool {
	var respErr *github.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == status
}
