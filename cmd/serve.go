package cmd

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-card/internal/card"
	"github.com/naka-gawa/github-card/internal/config"
	"github.com/naka-gawa/github-card/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves card stats and images over HTTP",
	Long:  `Starts an HTTP server exposing /api/stats/{username} as JSON and /api/cards/{username}?face=front|back as PNG.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		cfg := config.Load()
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		aggregator, release, err := newAggregator(cmd, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer release()

		avatarClient := &http.Client{Timeout: 10 * time.Second}
		avatars := func(ctx context.Context, url string) (image.Image, error) {
			return card.LoadAvatar(ctx, avatarClient, url)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(aggregator, avatars, logger)
		if err := srv.ListenAndServe(ctx, cfg.Port); err != nil {
			logger.Error("Server stopped", "err", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (defaults to PORT or 8080)")
}
