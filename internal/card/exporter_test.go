package card

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-card/internal/domain"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func assertUniform(t *testing.T, img image.Image, want color.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := color.RGBAModel.Convert(img.At(x, y)); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func visibility(t *testing.T, s Surface) (front, back bool) {
	t.Helper()
	f, ok := s.Find("front")
	require.True(t, ok)
	b, ok := s.Find("back")
	require.True(t, ok)
	return f.Visible(), b.Visible()
}

func TestExporter_Export(t *testing.T) {
	testCases := []struct {
		name         string
		face         Face
		initialFront bool
		initialBack  bool
		expected     color.RGBA
	}{
		{name: "back face while front is on top", face: Back, initialFront: true, initialBack: true, expected: blue},
		{name: "front face", face: Front, initialFront: true, initialBack: true, expected: red},
		{name: "front face while hidden", face: Front, initialFront: false, initialBack: true, expected: red},
		{name: "back face while hidden", face: Back, initialFront: true, initialBack: false, expected: blue},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			canvas := twoFaceCanvas()
			f, _ := canvas.Find("front")
			b, _ := canvas.Find("back")
			f.SetVisible(tc.initialFront)
			b.SetVisible(tc.initialBack)

			data, err := NewExporter(log.New(io.Discard)).Export(ctx, ExportRequest{Surface: canvas, Face: tc.face, FilenameStem: "octocat"})

			require.NoError(t, err)
			assertUniform(t, decodePNG(t, data), tc.expected)
			gotFront, gotBack := visibility(t, canvas)
			assert.Equal(t, tc.initialFront, gotFront)
			assert.Equal(t, tc.initialBack, gotBack)
		})
	}
}

// brokenSurface wraps a Canvas and fails at a chosen step.
type brokenSurface struct {
	*Canvas
	failCommit   bool
	failSnapshot bool
	commits      int
	snapshots    int
}

func (s *brokenSurface) Commit(ctx context.Context) error {
	s.commits++
	if s.failCommit && s.commits == 1 {
		return errors.New("renderer gone")
	}
	return s.Canvas.Commit(ctx)
}

func (s *brokenSurface) Snapshot(ctx context.Context) (image.Image, error) {
	s.snapshots++
	if s.failSnapshot {
		return nil, errors.New("rasterizer crashed")
	}
	return s.Canvas.Snapshot(ctx)
}

func TestExporter_Export_RestoresVisibilityOnFailure(t *testing.T) {
	testCases := []struct {
		name    string
		surface *brokenSurface
	}{
		{name: "commit fails", surface: &brokenSurface{Canvas: twoFaceCanvas(), failCommit: true}},
		{name: "snapshot fails", surface: &brokenSurface{Canvas: twoFaceCanvas(), failSnapshot: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewExporter(log.New(io.Discard)).Export(context.Background(), ExportRequest{Surface: tc.surface, Face: Back})

			assert.Error(t, err)
			front, back := visibility(t, tc.surface)
			assert.True(t, front)
			assert.True(t, back)
			assert.Equal(t, 2, tc.surface.commits, "restored state must be committed")
		})
	}
}

func TestExporter_Export_FaceNotFound(t *testing.T) {
	surface := &brokenSurface{Canvas: NewCanvas(4, 4)}
	surface.Canvas.AddLayer("front", solid(red))

	data, err := NewExporter(log.New(io.Discard)).Export(context.Background(), ExportRequest{Surface: surface, Face: Front})

	assert.ErrorIs(t, err, domain.ErrFaceNotFound)
	assert.Nil(t, data)
	assert.Zero(t, surface.commits)
	assert.Zero(t, surface.snapshots)
}

type recordingDownloader struct {
	name string
	data []byte
}

func (d *recordingDownloader) Save(_ context.Context, name string, data []byte) error {
	d.name, d.data = name, data
	return nil
}

type recordingSharer struct {
	payload *SharePayload
	err     error
}

func (s *recordingSharer) Share(_ context.Context, payload SharePayload) error {
	s.payload = &payload
	return s.err
}

func TestExporter_Download(t *testing.T) {
	dl := &recordingDownloader{}
	req := NewExportRequest(twoFaceCanvas(), Back, &domain.Result{Profile: domain.Profile{Login: "octocat"}})

	name, err := NewExporter(log.New(io.Discard)).Download(context.Background(), req, dl)

	require.NoError(t, err)
	assert.Equal(t, "github-card-octocat.png", name)
	assert.Equal(t, name, dl.name)
	assertUniform(t, decodePNG(t, dl.data), blue)
}

func TestExporter_Share(t *testing.T) {
	testCases := []struct {
		name           string
		sharer         *recordingSharer
		expectDownload bool
		expectError    bool
	}{
		{name: "native share", sharer: &recordingSharer{}},
		{name: "share unsupported degrades to download", sharer: &recordingSharer{err: domain.ErrShareUnsupported}, expectDownload: true},
		{name: "no sharer degrades to download", sharer: nil, expectDownload: true},
		{name: "share failure is reported", sharer: &recordingSharer{err: errors.New("boom")}, expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dl := &recordingDownloader{}
			req := NewExportRequest(twoFaceCanvas(), Front, &domain.Result{Profile: domain.Profile{Login: "octocat"}})

			var sharer Sharer
			if tc.sharer != nil {
				sharer = tc.sharer
			}
			name, err := NewExporter(log.New(io.Discard)).Share(context.Background(), req, sharer, dl)

			if tc.expectError {
				assert.Error(t, err)
				assert.Empty(t, dl.name)
				return
			}
			require.NoError(t, err)
			if tc.expectDownload {
				assert.Equal(t, "github-card-octocat.png", name)
				assert.Equal(t, name, dl.name)
			} else {
				assert.Empty(t, name)
				assert.Empty(t, dl.name)
			}
			if tc.sharer != nil {
				require.NotNil(t, tc.sharer.payload)
				assert.Equal(t, "My GitHub Card", tc.sharer.payload.Title)
				assert.Equal(t, "Check out my GitHub stats for octocat!", tc.sharer.payload.Text)
				require.Len(t, tc.sharer.payload.Files, 1)
				assert.Equal(t, "github-card.png", tc.sharer.payload.Files[0].Name)
				assert.Equal(t, "image/png", tc.sharer.payload.Files[0].ContentType)
				assertUniform(t, decodePNG(t, tc.sharer.payload.Files[0].Data), red)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "github-card-user.png", Filename(FilenameStem(nil)))
	assert.Equal(t, "github-card-user.png", Filename(FilenameStem(&domain.Result{})))
	assert.Equal(t, "github-card-octocat.png", Filename(FilenameStem(&domain.Result{Profile: domain.Profile{Login: "octocat"}})))
	assert.Equal(t, "github-card-user.png", Filename(""))
}
