package visual

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

//nolint:gochecknoglobals // Parsed fonts are shared by every render
var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	errFont     error
)

func loadFonts() {
	regularFont, errFont = truetype.Parse(goregular.TTF)
	if errFont != nil {
		errFont = errors.Wrap(errFont, "failed to parse regular font")
		return
	}
	boldFont, errFont = truetype.Parse(gobold.TTF)
	if errFont != nil {
		errFont = errors.Wrap(errFont, "failed to parse bold font")
	}
}

// Face returns a Go font face at the given point size.
func Face(size float64, bold bool) (face font.Face, err error) {
	fontOnce.Do(loadFonts)
	if errFont != nil {
		err = errFont
		return face, err
	}

	f := regularFont
	if bold {
		f = boldFont
	}

	face = truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, err
}
