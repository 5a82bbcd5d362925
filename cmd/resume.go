package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resumeFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var resumeCmd = &cobra.Command{
	Use:   "resume <role-id>",
	Short: "Write the résumé for a role",
	Long: `Write the résumé for one of the roles defined in the content document.

Formats:
  pdf  Letter-size PDF; publications and certifications start a second page
  md   Markdown
  png  preview image of the first page

Example:
  portfolio resume platform-engineer
  portfolio resume ai-engineer --format md --output-dir ~/Documents`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.Flags().StringVar(&resumeFormat, "format", resume.FormatPDF, "Output format: "+strings.Join(resume.Formats, ", "))
	resumeCmd.Flags().StringVar(&resumeOutputDir, "output-dir", "", "Output directory (default from config)")
}

func runResume(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	_, err = resume.ContentType(resumeFormat)
	if err != nil {
		return err
	}

	cfg, data, err := setup(ctx)
	if err != nil {
		return err
	}

	roleID := args[0]
	role, found := data.RoleByID(roleID)
	if !found {
		err = errors.Errorf("unknown role %q (available: %s)", roleID, strings.Join(roleIDs(data), ", "))
		return err
	}

	outDir := getOutputDir(resumeOutputDir, cfg.Defaults.OutputDir)
	err = ensureOutputDir(outDir)
	if err != nil {
		return err
	}

	opts := resume.DefaultOptions()
	opts.Margin = cfg.Resume.Margin

	if getVerbose() && resumeFormat != resume.FormatMarkdown {
		var doc resume.Document
		doc, err = resume.Build(data.Personal, role, data.Projects, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Laid out %d page(s)\n", doc.PageCount())
	}

	var buf bytes.Buffer
	err = withSpinner(fmt.Sprintf("Rendering %s résumé...", role.Title), func() error {
		return resume.Write(&buf, resumeFormat, data.Personal, role, data.Projects, opts)
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to render résumé for %s", roleID)
		return err
	}

	name := fmt.Sprintf("%s-%s.%s", sanitizeFilename(data.Personal.Name), sanitizeFilename(role.ID), resumeFormat)
	path, err := writeOutput(outDir, name, buf.Bytes())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Résumé written to %s\n", path)
	return err
}

func roleIDs(data content.Dataset) (ids []string) {
	ids = make([]string, 0, len(data.Roles))
	for _, r := range data.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}
