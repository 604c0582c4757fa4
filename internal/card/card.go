package card

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"

	"github.com/naka-gawa/github-card/internal/domain"
)

// Card dimensions, 16:9.
const (
	Width  = 960
	Height = 540
)

// ProfileURL is the address encoded in the back face QR code.
func ProfileURL(login string) string {
	return "https://github.com/" + login
}

// New builds a Canvas holding both faces of the card for result. avatar may be nil.
// The back layer sits under the front layer and both start visible.
func New(result domain.Result, avatar image.Image) (*Canvas, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	qr, err := qrcode.New(ProfileURL(result.Profile.Login), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	qr.DisableBorder = true

	canvas := NewCanvas(Width, Height)
	canvas.AddLayer(Back.Marker(), paintBack(result.Profile.Login, qr.Image(qrSize), fs))
	canvas.AddLayer(Front.Marker(), paintFront(result, avatar, fs))
	return canvas, nil
}
