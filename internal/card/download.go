package card

import (
	"context"
	"os"
	"path/filepath"
)

// Downloader stores an exported image under a file name.
type Downloader interface {
	Save(ctx context.Context, name string, data []byte) error
}

// DirDownloader writes exports into Dir, creating it if needed.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Save(_ context.Context, name string, data []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filepath.Base(name)), data, 0o644)
}

// DownloaderFunc adapts a function to Downloader.
type DownloaderFunc func(ctx context.Context, name string, data []byte) error

func (f DownloaderFunc) Save(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}
