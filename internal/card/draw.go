package card

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/naka-gawa/github-card/internal/domain"
)

const (
	colorPanel      = "#111111"
	colorBody       = "#1e1e1e"
	colorFold       = "#F7EA35"
	colorGold       = "#deaf56"
	colorText       = "#ffffff"
	avatarSize      = 120
	qrSize          = 256
	createdOnLayout = "2006-01-02"
)

// paintFront draws the profile side: avatar and identity on the left, the stats table on the right.
func paintFront(result domain.Result, avatar image.Image, fs fontSet) Painter {
	profile, stats := result.Profile, result.Stats
	if avatar != nil {
		avatar = imaging.Fill(avatar, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)
	}
	rows := [][2]string{
		{"Repos", fmt.Sprint(profile.PublicRepos)},
		{"Followers", fmt.Sprint(profile.Followers)},
		{"Stars", fmt.Sprint(stats.TotalStars)},
		{"Forks", fmt.Sprint(stats.TotalForks)},
		{"Active Day", stats.MostActiveDay},
		{"Location", profile.Region()},
		{"Created-on", profile.CreatedAt.UTC().Format(createdOnLayout)},
	}

	return func(dc *gg.Context) {
		w, h := float64(dc.Width()), float64(dc.Height())
		leftW := w * 0.475
		foldW := w * 0.05
		rightX := leftW + foldW
		rightW := w - rightX

		dc.SetHexColor(colorBody)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
		dc.SetHexColor(colorPanel)
		dc.DrawRectangle(0, 0, leftW, h)
		dc.Fill()
		dc.SetHexColor(colorFold)
		dc.DrawRectangle(leftW, 0, foldW, h)
		dc.Fill()

		cx := leftW / 2
		avatarY := h * 0.34
		dc.SetHexColor(colorGold)
		dc.DrawCircle(cx, avatarY, avatarSize*0.75)
		dc.Fill()
		if avatar != nil {
			dc.DrawImageAnchored(avatar, int(cx), int(avatarY), 0.5, 0.5)
		}

		dc.SetHexColor(colorText)
		dc.SetFontFace(face(fs.bold, 24))
		dc.DrawStringAnchored(truncate(dc, profile.Name, leftW*0.9), cx, h*0.62, 0.5, 0.5)
		dc.SetFontFace(face(fs.regular, 16))
		dc.DrawStringAnchored(truncate(dc, profile.Bio, leftW*0.9), cx, h*0.69, 0.5, 0.5)
		if profile.Blog != "" {
			dc.SetHexColor(colorGold)
			dc.DrawStringAnchored("Website", cx, h*0.76, 0.5, 0.5)
		}

		rcx := rightX + rightW/2
		dc.SetHexColor(colorGold)
		dc.SetFontFace(face(fs.bold, 28))
		dc.DrawStringAnchored("Your GitHub Stats", rcx, h*0.13, 0.5, 0.5)

		labelX := rightX + rightW*0.1
		valueX := rightX + rightW*0.55
		rowY := h * 0.25
		step := h * 0.075
		bold, mono := face(fs.bold, 18), face(fs.mono, 18)
		dc.SetHexColor(colorText)
		for i, row := range rows {
			y := rowY + float64(i)*step
			dc.SetFontFace(bold)
			dc.DrawStringAnchored(row[0], labelX, y, 0, 0.5)
			dc.SetFontFace(mono)
			dc.DrawStringAnchored(truncate(dc, row[1], rightW*0.4), valueX, y, 0, 0.5)
		}

		dc.SetFontFace(face(fs.regular, 18))
		dc.DrawStringWrapped("Top Languages : "+stats.TopLanguages, rcx, h*0.86, 0.5, 0.5, rightW*0.9, 1.3, gg.AlignCenter)
	}
}

// paintBack draws the QR side linking to the profile.
func paintBack(login string, qr image.Image, fs fontSet) Painter {
	return func(dc *gg.Context) {
		w, h := float64(dc.Width()), float64(dc.Height())
		dc.SetHexColor(colorPanel)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()

		for _, corner := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
			dc.SetHexColor(colorGold)
			dc.DrawCircle(corner[0], corner[1], 72)
			dc.Fill()
		}

		cx, cy := w/2, h*0.44
		dc.SetHexColor(colorGold)
		dc.DrawRectangle(cx-qrSize/2-6, cy-qrSize/2-6, qrSize+12, qrSize+12)
		dc.Fill()
		dc.DrawImageAnchored(qr, int(cx), int(cy), 0.5, 0.5)

		dc.SetFontFace(face(fs.bold, 28))
		dc.DrawStringAnchored("@"+login, cx, cy+qrSize/2+40, 0.5, 0.5)
	}
}

// truncate shortens s with an ellipsis until it fits maxWidth in the current font.
func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}
