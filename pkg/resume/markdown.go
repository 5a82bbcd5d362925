package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/pkg/errors"
)

// Markdown renders the résumé for role as Markdown, in the same section order
// as the PDF.
func Markdown(info content.PersonalInfo, role content.JobRole, projects []content.Project) (md string, err error) {
	resolved, err := resolveProjects(role, projects)
	if err != nil {
		return md, err
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", info.Name)
	title := role.Title
	if title == "" {
		title = info.Title
	}
	fmt.Fprintf(&sb, "**%s**\n\n", title)
	if line := contactLine(info); line != "" {
		fmt.Fprintf(&sb, "%s\n\n", line)
	}

	if role.Summary != "" {
		fmt.Fprintf(&sb, "## Summary\n\n%s\n\n", role.Summary)
	}

	if len(role.Skills) > 0 {
		sb.WriteString("## Skills\n\n")
		for _, g := range role.Skills {
			fmt.Fprintf(&sb, "- **%s:** %s\n", g.Group, strings.Join(g.Items, ", "))
		}
		sb.WriteString("\n")
	}

	if len(role.Experience) > 0 {
		sb.WriteString("## Experience\n\n")
		for _, e := range role.Experience {
			fmt.Fprintf(&sb, "### %s, %s\n\n", e.Role, e.Company)
			meta := e.Dates
			if e.Location != "" {
				meta += " | " + e.Location
			}
			fmt.Fprintf(&sb, "*%s*\n\n", meta)
			for _, h := range e.Highlights {
				fmt.Fprintf(&sb, "- %s\n", h)
			}
			sb.WriteString("\n")
		}
	}

	if len(role.Projects) > 0 {
		sb.WriteString("## Projects\n\n")
		for _, ref := range role.Projects {
			p := resolved[ref.ID]
			fmt.Fprintf(&sb, "### %s\n\n", p.Title)
			if p.Timeline != "" {
				fmt.Fprintf(&sb, "*%s*\n\n", p.Timeline)
			}
			highlights := ref.Highlights
			if len(highlights) == 0 && p.Description != "" {
				highlights = []string{p.Description}
			}
			for _, h := range highlights {
				fmt.Fprintf(&sb, "- %s\n", h)
			}
			if m := metricLine(p.Metrics); m != "" {
				fmt.Fprintf(&sb, "\n%s\n", m)
			}
			sb.WriteString("\n")
		}
	}

	if len(role.Education) > 0 {
		sb.WriteString("## Education\n\n")
		for _, e := range role.Education {
			fmt.Fprintf(&sb, "- **%s**, %s (%s)\n", e.Degree, e.Institution, e.Dates)
		}
		sb.WriteString("\n")
	}

	if len(role.Publications) > 0 {
		sb.WriteString("## Publications\n\n")
		for _, p := range role.Publications {
			entry := fmt.Sprintf("**%s**, %s, %s", p.Title, p.Venue, p.Year)
			if p.URL != "" {
				entry += fmt.Sprintf(" <%s>", p.URL)
			}
			fmt.Fprintf(&sb, "- %s\n", entry)
		}
		sb.WriteString("\n")
	}

	if len(role.Certifications) > 0 {
		sb.WriteString("## Certifications\n\n")
		for _, c := range role.Certifications {
			fmt.Fprintf(&sb, "- **%s**, %s (%s)\n", c.Name, c.Issuer, c.Year)
		}
		sb.WriteString("\n")
	}

	md = strings.TrimRight(sb.String(), "\n") + "\n"
	return md, err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(md, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(md), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}
