package resume

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Font styles understood by the PDF writer.
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleItalic  = "I"
)

// FamilyHelvetica is the core PDF font used for every run.
const FamilyHelvetica = "Helvetica"

// leading is the line height as a multiple of the font size.
const leading = 1.25

// Font describes one text run's face.
type Font struct {
	Family string  `json:"family"`
	Style  string  `json:"style"`
	Size   float64 `json:"size"`
}

// Measurer reports how much space text occupies.
type Measurer interface {
	Width(text string, font Font) (width float64)
	LineHeight(font Font) (height float64)
}

// FixedMeasurer gives every rune the same advance, Advance * font size.
type FixedMeasurer struct {
	Advance float64
}

// Width returns the fixed-advance width of text.
func (m FixedMeasurer) Width(text string, font Font) (width float64) {
	advance := m.Advance
	if advance <= 0 {
		advance = 0.5
	}
	width = float64(len([]rune(text))) * advance * font.Size
	return width
}

// LineHeight returns the line height for font.
func (m FixedMeasurer) LineHeight(font Font) (height float64) {
	height = font.Size * leading
	return height
}

// PDFMeasurer measures with the core font metrics fpdf embeds. It keeps its
// own fpdf instance and is not safe for concurrent use.
type PDFMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDFMeasurer returns a measurer backed by fpdf.
func NewPDFMeasurer() (m *PDFMeasurer) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	m = &PDFMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	return m
}

// Width returns the rendered width of text.
func (m *PDFMeasurer) Width(text string, font Font) (width float64) {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	width = m.pdf.GetStringWidth(m.tr(text))
	return width
}

// LineHeight returns the line height for font.
func (m *PDFMeasurer) LineHeight(font Font) (height float64) {
	height = font.Size * leading
	return height
}

// Wrap breaks text into lines no wider than width. A single word wider than
// width gets a line of its own.
func Wrap(m Measurer, text string, font Font, width float64) (lines []string) {
	lines = make([]string, 0)
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Width(candidate, font) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	return lines
}
