// Package resume lays out a one- or two-page résumé for a job role and writes
// it as PDF, PNG preview or Markdown.
package resume

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/pkg/errors"
)

// Colours.
const (
	ColorText   = "#1e293b"
	ColorMuted  = "#64748b"
	ColorAccent = "#0369a1"
	ColorBand   = "#e0f2fe"
	ColorRule   = "#cbd5e1"
)

//nolint:gochecknoglobals // Type scale
var (
	FontName    = Font{Family: FamilyHelvetica, Style: StyleBold, Size: 22}
	FontTitle   = Font{Family: FamilyHelvetica, Style: StyleRegular, Size: 12}
	FontHeading = Font{Family: FamilyHelvetica, Style: StyleBold, Size: 11}
	FontBody    = Font{Family: FamilyHelvetica, Style: StyleRegular, Size: 9.5}
	FontStrong  = Font{Family: FamilyHelvetica, Style: StyleBold, Size: 9.5}
	FontSmall   = Font{Family: FamilyHelvetica, Style: StyleRegular, Size: 8.5}
	FontNote    = Font{Family: FamilyHelvetica, Style: StyleItalic, Size: 8.5}
)

const (
	bulletIndent   = 12.0
	bandPadding    = 12.0
	sectionGap     = 10.0
	entryGap       = 4.0
	columnGutter   = 16.0
	headingRuleGap = 3.0
)

// Options control the layout.
type Options struct {
	Measurer Measurer
	Size     PageSize
	Margin   float64
}

// DefaultOptions returns Letter pages with half-inch margins measured with fpdf.
func DefaultOptions() (opts Options) {
	opts = Options{Measurer: NewPDFMeasurer(), Size: Letter, Margin: 36}
	return opts
}

type builder struct {
	m Measurer
	l *Layout
}

// Build lays out the résumé for role. projects resolves the role's project
// references. Publications and certifications go on a second page, which only
// exists when the role has any.
func Build(info content.PersonalInfo, role content.JobRole, projects []content.Project, opts Options) (doc Document, err error) {
	if opts.Measurer == nil {
		opts.Measurer = NewPDFMeasurer()
	}
	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		opts.Size = Letter
	}
	if opts.Margin < 0 || 2*opts.Margin >= opts.Size.Width || 2*opts.Margin >= opts.Size.Height {
		err = errors.Errorf("margin %.1f does not fit a %.0fx%.0f page", opts.Margin, opts.Size.Width, opts.Size.Height)
		return doc, err
	}

	resolved, err := resolveProjects(role, projects)
	if err != nil {
		return doc, err
	}

	b := &builder{m: opts.Measurer, l: NewLayout(opts.Size, opts.Margin)}

	b.header(info, role)
	b.summary(role.Summary)
	b.skills(role.Skills)
	b.experience(role.Experience)
	b.projects(role.Projects, resolved)
	b.education(role.Education)

	if role.HasSecondPage() {
		b.l.NewPage()
		b.publications(role.Publications)
		b.certifications(role.Certifications)
	}

	doc = Document{
		Title:  fmt.Sprintf("%s - %s", info.Name, role.Title),
		Author: info.Name,
		Size:   opts.Size,
		Pages:  b.l.Pages(),
	}
	return doc, err
}

func resolveProjects(role content.JobRole, projects []content.Project) (resolved map[string]content.Project, err error) {
	resolved = make(map[string]content.Project, len(role.Projects))
	for _, ref := range role.Projects {
		p, found := content.ProjectByID(projects, ref.ID)
		if !found {
			err = errors.Errorf("role %s references unknown project %s", role.ID, ref.ID)
			return resolved, err
		}
		resolved[ref.ID] = p
	}
	return resolved, err
}

func (b *builder) text(s string, font Font, x float64, color string) (line Line) {
	line = Line{
		Height: b.m.LineHeight(font),
		Elements: []Element{{
			Kind:  ElementText,
			X:     x,
			W:     b.m.Width(s, font),
			H:     b.m.LineHeight(font),
			Text:  s,
			Font:  font,
			Color: color,
		}},
	}
	return line
}

// split puts left at x and right flush with the right margin on one line.
func (b *builder) split(left string, leftFont Font, right string, rightFont Font) (line Line) {
	line = b.text(left, leftFont, b.l.Left(), ColorText)
	if right == "" {
		return line
	}

	w := b.m.Width(right, rightFont)
	r := b.text(right, rightFont, b.l.Right()-w, ColorMuted)
	line.Elements = append(line.Elements, r.Elements...)
	if r.Height > line.Height {
		line.Height = r.Height
	}
	return line
}

func (b *builder) paragraph(s string, font Font, x, width float64, color string) (lines []Line) {
	lines = make([]Line, 0)
	for _, row := range Wrap(b.m, s, font, width) {
		lines = append(lines, b.text(row, font, x, color))
	}
	return lines
}

func (b *builder) bullet(s string) (lines []Line) {
	x := b.l.Left() + bulletIndent
	lines = b.paragraph(s, FontBody, x, b.l.Right()-x, ColorText)
	if len(lines) == 0 {
		return lines
	}

	mark := b.text("•", FontBody, b.l.Left()+3, ColorAccent)
	lines[0].Elements = append(mark.Elements, lines[0].Elements...)
	return lines
}

func (b *builder) heading(title string) (lines []Line) {
	label := b.text(strings.ToUpper(title), FontHeading, b.l.Left(), ColorAccent)
	rule := Line{
		Height: headingRuleGap * 2,
		Elements: []Element{{
			Kind:  ElementRule,
			X:     b.l.Left(),
			Y:     headingRuleGap,
			W:     b.l.ContentWidth(),
			H:     0.75,
			Color: ColorRule,
		}},
	}
	lines = []Line{label, rule}
	return lines
}

// section places a heading glued to the first of its blocks.
func (b *builder) section(title string, blocks []Block) {
	if len(blocks) == 0 {
		return
	}

	first := blocks[0]
	first.Lines = append(b.heading(title), first.Lines...)
	first.SpaceBefore = sectionGap
	b.l.Place(first)

	for _, block := range blocks[1:] {
		b.l.Place(block)
	}
}

func (b *builder) header(info content.PersonalInfo, role content.JobRole) {
	x := b.l.Left() + bandPadding
	width := b.l.ContentWidth() - 2*bandPadding

	lines := []Line{b.text(info.Name, FontName, x, ColorText)}
	title := role.Title
	if title == "" {
		title = info.Title
	}
	lines = append(lines, b.text(title, FontTitle, x, ColorAccent))
	lines = append(lines, b.paragraph(contactLine(info), FontSmall, x, width, ColorMuted)...)

	height := 2 * bandPadding
	for _, l := range lines {
		height += l.Height
	}

	band := Line{
		Height: height,
		Elements: []Element{{
			Kind:  ElementBox,
			X:     b.l.Left(),
			W:     b.l.ContentWidth(),
			H:     height,
			Color: ColorBand,
		}},
	}

	y := bandPadding
	for _, l := range lines {
		for _, e := range l.Elements {
			e.Y += y
			band.Elements = append(band.Elements, e)
		}
		y += l.Height
	}

	b.l.Place(Block{Lines: []Line{band}})
}

func contactLine(info content.PersonalInfo) (line string) {
	parts := make([]string, 0)
	for _, v := range []string{info.Email, info.Phone, info.Location} {
		if v != "" {
			parts = append(parts, v)
		}
	}

	keys := make([]string, 0, len(info.Links))
	for k := range info.Links {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, strings.TrimPrefix(strings.TrimPrefix(info.Links[k], "https://"), "www."))
	}

	line = strings.Join(parts, "  |  ")
	return line
}

func (b *builder) summary(summary string) {
	if summary == "" {
		return
	}
	lines := b.paragraph(summary, FontBody, b.l.Left(), b.l.ContentWidth(), ColorText)
	b.section("Summary", []Block{{Lines: lines}})
}

// skills lays the groups out two per row.
func (b *builder) skills(groups []content.SkillGroup) {
	if len(groups) == 0 {
		return
	}

	colWidth := (b.l.ContentWidth() - columnGutter) / 2
	blocks := make([]Block, 0)
	for i := 0; i < len(groups); i += 2 {
		row := Line{}
		for c := 0; c < 2 && i+c < len(groups); c++ {
			g := groups[i+c]
			x := b.l.Left() + float64(c)*(colWidth+columnGutter)

			label := g.Group + ": "
			labelWidth := b.m.Width(label, FontStrong)
			cell := b.text(label, FontStrong, x, ColorText)
			items := b.paragraph(strings.Join(g.Items, ", "), FontBody, x+labelWidth, colWidth-labelWidth, ColorText)

			y := 0.0
			for _, l := range items {
				for _, e := range l.Elements {
					e.Y += y
					cell.Elements = append(cell.Elements, e)
				}
				y += l.Height
			}
			if y < cell.Height {
				y = cell.Height
			}

			row.Elements = append(row.Elements, cell.Elements...)
			if y > row.Height {
				row.Height = y
			}
		}
		blocks = append(blocks, Block{Lines: []Line{row}, SpaceAfter: entryGap / 2})
	}

	b.section("Skills", blocks)
}

func (b *builder) experience(entries []content.Experience) {
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		lines := []Line{b.split(fmt.Sprintf("%s, %s", e.Role, e.Company), FontStrong, e.Dates, FontSmall)}
		if e.Location != "" {
			lines = append(lines, b.text(e.Location, FontNote, b.l.Left(), ColorMuted))
		}
		for _, h := range e.Highlights {
			lines = append(lines, b.bullet(h)...)
		}
		blocks = append(blocks, Block{Lines: lines, SpaceAfter: entryGap})
	}

	b.section("Experience", blocks)
}

func (b *builder) projects(refs []content.RoleProject, resolved map[string]content.Project) {
	blocks := make([]Block, 0, len(refs))
	for _, ref := range refs {
		p := resolved[ref.ID]
		lines := []Line{b.split(p.Title, FontStrong, p.Timeline, FontSmall)}

		highlights := ref.Highlights
		if len(highlights) == 0 && p.Description != "" {
			highlights = []string{p.Description}
		}
		for _, h := range highlights {
			lines = append(lines, b.bullet(h)...)
		}

		if m := metricLine(p.Metrics); m != "" {
			x := b.l.Left() + bulletIndent
			lines = append(lines, b.paragraph(m, FontNote, x, b.l.Right()-x, ColorMuted)...)
		}

		blocks = append(blocks, Block{Lines: lines, SpaceAfter: entryGap})
	}

	b.section("Projects", blocks)
}

func metricLine(metrics []content.Metric) (line string) {
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		part := fmt.Sprintf("%s %s", m.Name, m.Value)
		if m.Improvement != "" {
			part += fmt.Sprintf(" (%s)", m.Improvement)
		}
		parts = append(parts, part)
	}
	line = strings.Join(parts, "  ·  ")
	return line
}

func (b *builder) education(entries []content.Education) {
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		line := b.split(fmt.Sprintf("%s, %s", e.Degree, e.Institution), FontStrong, e.Dates, FontSmall)
		blocks = append(blocks, Block{Lines: []Line{line}, SpaceAfter: entryGap})
	}

	b.section("Education", blocks)
}

func (b *builder) publications(entries []content.Publication) {
	blocks := make([]Block, 0, len(entries))
	for _, p := range entries {
		lines := b.paragraph(p.Title, FontStrong, b.l.Left(), b.l.ContentWidth(), ColorText)
		lines = append(lines, b.text(fmt.Sprintf("%s, %s", p.Venue, p.Year), FontSmall, b.l.Left(), ColorMuted))
		if p.URL != "" {
			lines = append(lines, b.text(p.URL, FontNote, b.l.Left(), ColorAccent))
		}
		blocks = append(blocks, Block{Lines: lines, SpaceAfter: entryGap})
	}

	b.section("Publications", blocks)
}

func (b *builder) certifications(entries []content.Certificate) {
	blocks := make([]Block, 0, len(entries))
	for _, c := range entries {
		line := b.split(fmt.Sprintf("%s, %s", c.Name, c.Issuer), FontStrong, c.Year, FontSmall)
		blocks = append(blocks, Block{Lines: []Line{line}, SpaceAfter: entryGap})
	}

	b.section("Certifications", blocks)
}
