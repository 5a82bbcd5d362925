package resume

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/nikogura/portfolio/pkg/visual"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
)

// WritePNG draws page (0-based) of doc as a PNG preview. scale multiplies
// the point size of the page; 1 gives 72 dpi.
func WritePNG(w io.Writer, doc Document, page int, scale float64) (err error) {
	if page < 0 || page >= doc.PageCount() {
		err = errors.Errorf("page %d out of range, document has %d", page, doc.PageCount())
		return err
	}
	if scale <= 0 {
		scale = 1
	}

	dc := gg.NewContext(int(doc.Size.Width*scale), int(doc.Size.Height*scale))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(scale, scale)

	faces := make(map[Font]font.Face)
	for _, e := range doc.Pages[page].Elements {
		dc.SetHexColor(e.Color)

		switch e.Kind {
		case ElementText:
			face, found := faces[e.Font]
			if !found {
				face, err = visual.Face(e.Font.Size, e.Font.Style == StyleBold)
				if err != nil {
					return err
				}
				faces[e.Font] = face
			}
			dc.SetFontFace(face)
			dc.DrawString(e.Text, e.X, e.Baseline())
		case ElementBox:
			dc.DrawRectangle(e.X, e.Y, e.W, e.H)
			dc.Fill()
		case ElementRule:
			dc.SetLineWidth(e.H)
			dc.DrawLine(e.X, e.Y, e.X+e.W, e.Y)
			dc.Stroke()
		}
	}

	err = dc.EncodePNG(w)
	if err != nil {
		err = errors.Wrap(err, "failed to encode png")
	}
	return err
}
