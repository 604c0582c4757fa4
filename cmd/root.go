// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-card/internal/cache"
	"github.com/naka-gawa/github-card/internal/config"
	"github.com/naka-gawa/github-card/internal/gateway"
	"github.com/naka-gawa/github-card/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-card",
	Short: "Build a shareable GitHub profile card.",
	Long: `github-card aggregates a GitHub user's public profile, repositories
and recent commits into a two-faced profile card. The card can be printed,
exported as PNG, shared, or served over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("commit-source", string(gateway.CommitSourceSearch), "Where recent commits are counted: search or graphql")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the GitHub response cache")
}

// newLogger writes to stderr so stdout stays clean for JSON output.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "github-card",
	})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newStore picks Redis when configured, otherwise the on-disk cache.
func newStore(cfg *config.Config, logger *log.Logger) (cache.Store, func(), error) {
	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using Redis cache")
		return store, func() { _ = store.Close() }, nil
	}
	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Using file cache", "dir", store.Dir())
	return store, func() {}, nil
}

// newAggregator wires config, cache and gateway together. The returned func releases the cache.
func newAggregator(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (*usecase.Aggregator, func(), error) {
	source, _ := cmd.Flags().GetString("commit-source")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	switch gateway.CommitSource(source) {
	case gateway.CommitSourceSearch, gateway.CommitSourceGraphQL:
	default:
		return nil, nil, fmt.Errorf("unknown commit source %q", source)
	}

	opts := gateway.Options{
		Token:        config.Token,
		CommitSource: gateway.CommitSource(source),
		CacheTTL:     cfg.CacheTTL,
	}
	release := func() {}
	if !noCache {
		store, closeStore, err := newStore(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Store = store
		release = closeStore
	}

	githubGateway, err := gateway.NewGitHubGateway(opts, logger)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAggregator(githubGateway, logger), release, nil
}
