package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-card/internal/config"
	"github.com/naka-gawa/github-card/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates a GitHub user's card stats",
	Long:  `Aggregates the profile, repository and recent commit stats for a GitHub user and prints them as JSON or as a terminal card.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		cfg := config.Load()

		user, _ := cmd.Flags().GetString("user")
		format, _ := cmd.Flags().GetString("format")
		if format != "json" && format != "card" {
			fmt.Fprintf(os.Stderr, "Error: unknown format %q, use json or card\n", format)
			os.Exit(1)
		}

		aggregator, release, err := newAggregator(cmd, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer release()

		result, err := aggregator.Aggregate(ctx, user)
		if err != nil {
			logger.Debug("Aggregation failed", "user", user, "err", err)
			fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
			release()
			os.Exit(1)
		}

		if format == "card" {
			fmt.Println(renderPreview(result))
			return
		}
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	statsCmd.Flags().StringP("format", "f", "json", "Output format: json or card")
	_ = statsCmd.MarkFlagRequired("user")
}
