package resume

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/nikogura/portfolio/pkg/icons"
	"github.com/pkg/errors"
)

// WritePDF draws every page of doc with fpdf and writes the PDF to w.
func WritePDF(w io.Writer, doc Document) (err error) {
	if doc.PageCount() == 0 {
		err = errors.New("document has no pages")
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Size.Width, Ht: doc.Size.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("portfolio", true)
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, e := range page.Elements {
			err = drawPDFElement(pdf, tr, e)
			if err != nil {
				err = errors.Wrapf(err, "page %d", page.Number)
				return err
			}
		}
	}

	err = pdf.Output(w)
	if err != nil {
		err = errors.Wrap(err, "failed to write pdf")
		return err
	}
	return err
}

func drawPDFElement(pdf *fpdf.Fpdf, tr func(string) string, e Element) (err error) {
	c, err := icons.ParseHex(e.Color)
	if err != nil {
		return err
	}
	r, g, b := int(c.R), int(c.G), int(c.B)

	switch e.Kind {
	case ElementText:
		pdf.SetFont(e.Font.Family, e.Font.Style, e.Font.Size)
		pdf.SetTextColor(r, g, b)
		pdf.Text(e.X, e.Baseline(), tr(e.Text))
	case ElementBox:
		pdf.SetFillColor(r, g, b)
		pdf.Rect(e.X, e.Y, e.W, e.H, "F")
	case ElementRule:
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(e.H)
		pdf.Line(e.X, e.Y, e.X+e.W, e.Y)
	default:
		err = errors.Errorf("unknown element kind %q", e.Kind)
		return err
	}

	if pdf.Err() {
		err = errors.Wrap(pdf.Error(), "fpdf")
	}
	return err
}
