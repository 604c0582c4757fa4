package card

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/naka-gawa/github-card/internal/domain"
)

const (
	// PlaceholderStem names exports made before any profile is loaded.
	PlaceholderStem = "user"

	ShareTitle    = "My GitHub Card"
	shareFilename = "github-card.png"
	pngType       = "image/png"
)

// ExportRequest describes one download or share action.
type ExportRequest struct {
	Surface      Surface
	Face         Face
	FilenameStem string
}

// NewExportRequest derives the filename stem from result, which may be nil.
func NewExportRequest(surface Surface, face Face, result *domain.Result) ExportRequest {
	return ExportRequest{Surface: surface, Face: face, FilenameStem: FilenameStem(result)}
}

// FilenameStem returns the profile login, or PlaceholderStem when nothing is loaded.
func FilenameStem(result *domain.Result) string {
	if result == nil || result.Profile.Login == "" {
		return PlaceholderStem
	}
	return result.Profile.Login
}

// Filename is the download name for a stem.
func Filename(stem string) string {
	if stem == "" {
		stem = PlaceholderStem
	}
	return "github-card-" + stem + ".png"
}

// Exporter rasterizes the visible face of a card surface.
type Exporter struct {
	logger *log.Logger
}

// NewExporter creates a new Exporter instance.
func NewExporter(logger *log.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export returns a PNG of req.Face only.
//
// The opposite face is hidden and the surface committed before sampling. Both layers get their
// previous visibility back before Export returns, whether or not rasterization succeeded.
func (e *Exporter) Export(ctx context.Context, req ExportRequest) ([]byte, error) {
	front, okFront := req.Surface.Find(Front.Marker())
	back, okBack := req.Surface.Find(Back.Marker())
	if !okFront || !okBack {
		return nil, fmt.Errorf("%w: want layers %q and %q", domain.ErrFaceNotFound, Front.Marker(), Back.Marker())
	}

	shown, hidden := front, back
	if req.Face == Back {
		shown, hidden = back, front
	}
	wasShown, wasHidden := shown.Visible(), hidden.Visible()
	defer func() {
		shown.SetVisible(wasShown)
		hidden.SetVisible(wasHidden)
		if err := req.Surface.Commit(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("Failed to re-render card after export", "err", err)
		}
	}()

	hidden.SetVisible(false)
	shown.SetVisible(true)
	if err := req.Surface.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to render %s face: %w", req.Face, err)
	}
	img, err := req.Surface.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize %s face: %w", req.Face, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Download exports the visible face and saves it under Filename(req.FilenameStem).
// It returns the name used.
func (e *Exporter) Download(ctx context.Context, req ExportRequest, dl Downloader) (string, error) {
	data, err := e.Export(ctx, req)
	if err != nil {
		e.logger.Error("Card export failed", "face", req.Face, "err", err)
		return "", err
	}
	name := Filename(req.FilenameStem)
	if err := dl.Save(ctx, name, data); err != nil {
		e.logger.Error("Card download failed", "file", name, "err", err)
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	e.logger.Info("Card saved", "file", name, "face", req.Face)
	return name, nil
}

// Share hands the exported face to sharer. When sharer is nil or reports
// domain.ErrShareUnsupported, the image is downloaded instead and its name returned.
func (e *Exporter) Share(ctx context.Context, req ExportRequest, sharer Sharer, dl Downloader) (string, error) {
	data, err := e.Export(ctx, req)
	if err != nil {
		e.logger.Error("Card export failed", "face", req.Face, "err", err)
		return "", err
	}
	payload := SharePayload{
		Title: ShareTitle,
		Text:  fmt.Sprintf("Check out my GitHub stats for %s!", req.FilenameStem),
		Files: []Attachment{{Name: shareFilename, ContentType: pngType, Data: data}},
	}

	err = domain.ErrShareUnsupported
	if sharer != nil {
		err = sharer.Share(ctx, payload)
	}
	switch {
	case err == nil:
		e.logger.Info("Card shared", "login", req.FilenameStem)
		return "", nil
	case errors.Is(err, domain.ErrShareUnsupported):
		e.logger.Debug("Sharing unavailable, downloading instead")
		name := Filename(req.FilenameStem)
		if err := dl.Save(ctx, name, data); err != nil {
			e.logger.Error("Card download failed", "file", name, "err", err)
			return "", fmt.Errorf("failed to save %s: %w", name, err)
		}
		return name, nil
	default:
		e.logger.Error("Card share failed", "err", err)
		return "", fmt.Errorf("failed to share card: %w", err)
	}
}
