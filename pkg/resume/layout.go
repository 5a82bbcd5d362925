package resume

// PageSize is a page in points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Letter is US Letter in points.
//
//nolint:gochecknoglobals // Page geometry
var Letter = PageSize{Width: 612, Height: 792}

// Element kinds.
const (
	ElementText = "text"
	ElementBox  = "box"
	ElementRule = "rule"
)

// Element is one positioned drawing primitive. X and Y are the top-left
// corner in points; for a rule, W is its length and H its thickness.
type Element struct {
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Text  string  `json:"text,omitempty"`
	Font  Font    `json:"font"`
	Color string  `json:"color,omitempty"`
}

// Baseline returns the y coordinate text is drawn on.
func (e Element) Baseline() (y float64) {
	y = e.Y + e.Font.Size
	return y
}

// Page is one laid-out page.
type Page struct {
	Number   int       `json:"number"`
	Elements []Element `json:"elements"`
}

// Document is a laid-out résumé.
type Document struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Size   PageSize `json:"size"`
	Pages  []Page   `json:"pages"`
}

// PageCount returns the number of pages.
func (d Document) PageCount() (n int) {
	n = len(d.Pages)
	return n
}

// Texts returns the text runs of page i (0-based), in drawing order.
func (d Document) Texts(i int) (texts []string) {
	texts = make([]string, 0)
	if i < 0 || i >= len(d.Pages) {
		return texts
	}
	for _, e := range d.Pages[i].Elements {
		if e.Kind == ElementText {
			texts = append(texts, e.Text)
		}
	}
	return texts
}

// Line is a row of elements placed together. Element Y is relative to the
// top of the line.
type Line struct {
	Height   float64
	Elements []Element
}

// Block is a run of lines that is kept on one page when it fits.
type Block struct {
	SpaceBefore float64
	SpaceAfter  float64
	Lines       []Line
}

// Height returns the total height of the block including spacing.
func (b Block) Height() (h float64) {
	h = b.SpaceBefore + b.SpaceAfter
	for _, l := range b.Lines {
		h += l.Height
	}
	return h
}

// Layout places blocks top to bottom and starts a new page whenever the next
// block would overflow the current one.
type Layout struct {
	size   PageSize
	margin float64
	cursor float64
	pages  []Page
}

// NewLayout starts a layout with one empty page.
func NewLayout(size PageSize, margin float64) (l *Layout) {
	l = &Layout{size: size, margin: margin}
	l.NewPage()
	return l
}

// Left returns the x of the left margin.
func (l *Layout) Left() (x float64) {
	x = l.margin
	return x
}

// Right returns the x of the right margin.
func (l *Layout) Right() (x float64) {
	x = l.size.Width - l.margin
	return x
}

// ContentWidth returns the width between the margins.
func (l *Layout) ContentWidth() (w float64) {
	w = l.size.Width - 2*l.margin
	return w
}

// ContentHeight returns the usable height of a page.
func (l *Layout) ContentHeight() (h float64) {
	h = l.size.Height - 2*l.margin
	return h
}

// Cursor returns the y where the next block starts.
func (l *Layout) Cursor() (y float64) {
	y = l.cursor
	return y
}

// Remaining returns the height left on the current page.
func (l *Layout) Remaining() (h float64) {
	h = l.size.Height - l.margin - l.cursor
	return h
}

// AtTop reports whether nothing has been placed on the current page.
func (l *Layout) AtTop() (top bool) {
	top = l.cursor <= l.margin
	return top
}

// Fits reports whether a block of height h fits below the cursor.
func (l *Layout) Fits(h float64) (fits bool) {
	fits = h <= l.Remaining()+1e-9
	return fits
}

// WouldOverflow reports whether a block of height h would run past the bottom margin.
func (l *Layout) WouldOverflow(h float64) (overflow bool) {
	overflow = !l.Fits(h)
	return overflow
}

// NewPage starts a fresh page and moves the cursor to its top margin.
func (l *Layout) NewPage() {
	l.pages = append(l.pages, Page{Number: len(l.pages) + 1, Elements: make([]Element, 0)})
	l.cursor = l.margin
}

// Place commits a block. A block that would overflow moves to a new page; a
// block taller than a whole page is split between its lines.
func (l *Layout) Place(b Block) {
	if l.AtTop() {
		b.SpaceBefore = 0
	}

	if l.WouldOverflow(b.Height()) && !l.AtTop() {
		l.NewPage()
		b.SpaceBefore = 0
	}

	l.cursor += b.SpaceBefore
	for _, line := range b.Lines {
		if l.WouldOverflow(line.Height) && !l.AtTop() {
			l.NewPage()
		}
		l.emit(line)
	}
	l.cursor += b.SpaceAfter
}

func (l *Layout) emit(line Line) {
	page := &l.pages[len(l.pages)-1]
	for _, e := range line.Elements {
		e.Y += l.cursor
		page.Elements = append(page.Elements, e)
	}
	l.cursor += line.Height
}

// Pages returns the laid-out pages.
func (l *Layout) Pages() (pages []Page) {
	pages = append([]Page(nil), l.pages...)
	return pages
}
