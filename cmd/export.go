package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-card/internal/card"
	"github.com/naka-gawa/github-card/internal/config"
	"github.com/naka-gawa/github-card/internal/domain"
	"github.com/naka-gawa/github-card/internal/usecase"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Renders one face of the card to PNG",
	Long: `Renders the front or back face of a user's card to a PNG file.
With --share the image is posted to GITHUB_CARD_SHARE_URL; when sharing is
unavailable the file is written to the output directory instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		cfg := config.Load()

		user, _ := cmd.Flags().GetString("user")
		faceStr, _ := cmd.Flags().GetString("face")
		outDir, _ := cmd.Flags().GetString("out")
		share, _ := cmd.Flags().GetBool("share")

		face, err := card.ParseFace(faceStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		aggregator, release, err := newAggregator(cmd, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer release()

		session := usecase.NewSession(aggregator, logger)
		if _, err := session.Load(ctx, user); err != nil {
			logger.Debug("Aggregation failed", "user", user, "err", err)
			fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
			release()
			os.Exit(1)
		}
		result := session.Current()

		avatar, err := card.LoadAvatar(ctx, &http.Client{Timeout: 10 * time.Second}, result.Profile.AvatarURL)
		if err != nil {
			logger.Warn("Avatar unavailable, drawing without it", "err", err)
		}
		canvas, err := card.New(*result, avatar)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build card: %v\n", err)
			release()
			os.Exit(1)
		}

		exporter := card.NewExporter(logger)
		req := card.NewExportRequest(canvas, face, result)
		downloader := card.DirDownloader{Dir: outDir}

		var name string
		if share {
			name, err = exporter.Share(ctx, req, &card.HTTPSharer{URL: cfg.ShareURL}, downloader)
		} else {
			name, err = exporter.Download(ctx, req, downloader)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export card: %v\n", err)
			release()
			os.Exit(1)
		}
		if name != "" {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	exportCmd.Flags().String("face", card.Front.Marker(), "Card face to export: front or back")
	exportCmd.Flags().StringP("out", "o", ".", "Directory the PNG is written to")
	exportCmd.Flags().Bool("share", false, "Share the card instead of saving it")
	_ = exportCmd.MarkFlagRequired("user")
}
