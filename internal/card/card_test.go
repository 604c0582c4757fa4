package card

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-card/internal/domain"
)

func sampleResult() domain.Result {
	return domain.Result{
		Profile: domain.Profile{
			Login:       "octocat",
			Name:        "The Octocat",
			Followers:   20,
			PublicRepos: 8,
			CreatedAt:   time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
			Location:    "San Francisco, CA",
			Bio:         "A very long biography that certainly will not fit on one line of the card face at all",
			Blog:        "https://github.blog",
		},
		Stats: domain.AggregatedStats{
			TotalRepos:    8,
			TotalStars:    120,
			TotalForks:    30,
			MostActiveDay: "Monday",
			TopLanguages:  "Go, Rust, Python",
			TotalCommits:  17,
		},
	}
}

func TestNew_FacesRenderSeparately(t *testing.T) {
	ctx := context.Background()
	avatar := imaging.New(200, 160, color.NRGBA{G: 200, A: 255})
	canvas, err := New(sampleResult(), avatar)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Width, Height), canvas.Bounds())

	exporter := NewExporter(log.New(io.Discard))
	front, err := exporter.Export(ctx, ExportRequest{Surface: canvas, Face: Front})
	require.NoError(t, err)
	back, err := exporter.Export(ctx, ExportRequest{Surface: canvas, Face: Back})
	require.NoError(t, err)

	frontImg, backImg := decodePNG(t, front), decodePNG(t, back)
	assert.Equal(t, Width, frontImg.Bounds().Dx())
	assert.Equal(t, Height, frontImg.Bounds().Dy())
	assert.NotEqual(t, front, back)

	// The fold stripe only exists on the front face.
	foldX, midY := int(Width*0.5), Height/2
	assert.Equal(t, color.RGBA{R: 0xF7, G: 0xEA, B: 0x35, A: 0xFF}, color.RGBAModel.Convert(frontImg.At(foldX, midY)))
	assert.NotEqual(t, color.RGBA{R: 0xF7, G: 0xEA, B: 0x35, A: 0xFF}, color.RGBAModel.Convert(backImg.At(foldX, Height-5)))
}

func TestNew_WithoutAvatar(t *testing.T) {
	canvas, err := New(domain.Result{}, nil)
	require.NoError(t, err)
	require.NoError(t, canvas.Commit(context.Background()))
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "https://github.com/octocat", ProfileURL("octocat"))
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, DirDownloader{Dir: dir}.Save(context.Background(), "github-card-octocat.png", []byte("png")))

	data, err := os.ReadFile(filepath.Join(dir, "github-card-octocat.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestHTTPSharer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My GitHub Card", r.FormValue("title"))
		assert.Equal(t, "Check out my GitHub stats for octocat!", r.FormValue("text"))
		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "github-card.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		body, _ := io.ReadAll(file)
		assert.Equal(t, "png-bytes", string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sharer := &HTTPSharer{URL: server.URL, Client: server.Client()}
	err := sharer.Share(context.Background(), SharePayload{
		Title: "My GitHub Card",
		Text:  "Check out my GitHub stats for octocat!",
		Files: []Attachment{{Name: "github-card.png", ContentType: "image/png", Data: []byte("png-bytes")}},
	})
	assert.NoError(t, err)
}

func TestHTTPSharer_Errors(t *testing.T) {
	var nilSharer *HTTPSharer
	assert.ErrorIs(t, nilSharer.Share(context.Background(), SharePayload{}), domain.ErrShareUnsupported)
	assert.ErrorIs(t, (&HTTPSharer{}).Share(context.Background(), SharePayload{}), domain.ErrShareUnsupported)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	err := (&HTTPSharer{URL: server.URL}).Share(context.Background(), SharePayload{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLoadAvatar(t *testing.T) {
	var png bytes.Buffer
	require.NoError(t, imaging.Encode(&png, imaging.New(32, 32, color.NRGBA{R: 10, A: 255}), imaging.PNG))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png.Bytes())
	}))
	defer server.Close()

	img, err := LoadAvatar(context.Background(), server.Client(), server.URL+"/u/1")
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	_, err = LoadAvatar(context.Background(), server.Client(), server.URL+"/missing")
	assert.Error(t, err)

	_, err = LoadAvatar(context.Background(), server.Client(), "")
	assert.Error(t, err)
}
