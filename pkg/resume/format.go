package resume

import (
	"io"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/pkg/errors"
)

// Output formats.
const (
	FormatPDF      = "pdf"
	FormatMarkdown = "md"
	FormatPNG      = "png"
)

// Formats lists the output formats.
//
//nolint:gochecknoglobals // Fixed enum
var Formats = []string{FormatPDF, FormatMarkdown, FormatPNG}

// ContentType returns the MIME type for format.
func ContentType(format string) (mime string, err error) {
	switch format {
	case FormatPDF:
		mime = "application/pdf"
	case FormatMarkdown:
		mime = "text/markdown; charset=utf-8"
	case FormatPNG:
		mime = "image/png"
	default:
		err = errors.Errorf("unsupported format %q (want pdf, md or png)", format)
	}
	return mime, err
}

// Write renders the résumé for role in format. PNG output previews the first page.
func Write(w io.Writer, format string, info content.PersonalInfo, role content.JobRole, projects []content.Project, opts Options) (err error) {
	_, err = ContentType(format)
	if err != nil {
		return err
	}

	if format == FormatMarkdown {
		var md string
		md, err = Markdown(info, role, projects)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		if err != nil {
			err = errors.Wrap(err, "failed to write markdown")
		}
		return err
	}

	doc, err := Build(info, role, projects, opts)
	if err != nil {
		return err
	}

	if format == FormatPNG {
		err = WritePNG(w, doc, 0, 1.5)
		return err
	}

	err = WritePDF(w, doc)
	return err
}
