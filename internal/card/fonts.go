package card

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type fontSet struct {
	regular, bold, mono *truetype.Font
}

var (
	fonts     fontSet
	fontsErr  error
	fontsOnce sync.Once
)

// loadFonts parses the embedded Go fonts once.
func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		var set fontSet
		if set.regular, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		if set.bold, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		if set.mono, fontsErr = truetype.Parse(gomono.TTF); fontsErr != nil {
			return
		}
		fonts = set
	})
	return fonts, fontsErr
}

// face returns a new font.Face. Faces keep glyph caches and must not be shared across goroutines.
func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
}
