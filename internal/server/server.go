// Package server exposes card stats and card images over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/naka-gawa/github-card/internal/card"
	"github.com/naka-gawa/github-card/internal/usecase"
)

// AvatarLoader fetches a profile picture. Failures are tolerated; the card draws without it.
type AvatarLoader func(ctx context.Context, url string) (image.Image, error)

// Server wires the routes to the aggregator and exporter.
type Server struct {
	source   usecase.StatsSource
	avatars  AvatarLoader
	exporter *card.Exporter
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server with all routes registered.
func New(source usecase.StatsSource, avatars AvatarLoader, logger *log.Logger) *Server {
	s := &Server{
		source:   source,
		avatars:  avatars,
		exporter: card.NewExporter(logger),
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats/{username}", s.getStats)
		r.Get("/cards/{username}", s.getCard)
	})
	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.source.Aggregate(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.logger.Debug("Aggregation failed", "user", chi.URLParam(r, "username"), "err", err)
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	face, err := card.ParseFace(r.URL.Query().Get("face"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	result, err := s.source.Aggregate(ctx, username)
	if err != nil {
		s.logger.Debug("Aggregation failed", "user", username, "err", err)
		s.writeError(w, err)
		return
	}

	var avatar image.Image
	if s.avatars != nil {
		if avatar, err = s.avatars(ctx, result.Profile.AvatarURL); err != nil {
			s.logger.Warn("Avatar unavailable", "user", username, "err", err)
			avatar = nil
		}
	}
	canvas, err := card.New(*result, avatar)
	if err != nil {
		s.writeError(w, err)
		return
	}

	req := card.NewExportRequest(canvas, face, result)
	headerSent := false
	respond := card.DownloaderFunc(func(_ context.Context, name string, data []byte) error {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		headerSent = true
		_, err := w.Write(data)
		return err
	})
	if _, err := s.exporter.Download(ctx, req, respond); err != nil {
		if headerSent {
			s.logger.Warn("Card response interrupted", "user", username, "err", err)
			return
		}
		s.writeError(w, err)
	}
}
