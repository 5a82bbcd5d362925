package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nikogura/portfolio/pkg/config"
	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var contentSource string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve and render a developer portfolio",
	Long: `portfolio serves a developer portfolio: projects with derived complexity
and impact scores, interactive technology graphs, and downloadable résumés.

Content comes from a YAML or JSON document (file path or http(s) URL). Without
one, the built-in sample portfolio is used.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.portfolio/config.json)")
	rootCmd.PersistentFlags().StringVar(&contentSource, "content", "", "content document path or URL (default from config, else built-in)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// getContentSource returns the --content flag value.
func getContentSource() (result string) {
	result = contentSource
	return result
}

// setup loads the config, then the content it points at. --content wins over
// the config file and the environment.
func setup(ctx context.Context) (cfg config.Config, data content.Dataset, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, data, err
	}

	if src := getContentSource(); src != "" {
		cfg.Content = src
	}

	if getVerbose() {
		if cfg.Content == "" {
			fmt.Println("Loading built-in content")
		} else {
			fmt.Printf("Loading content from: %s\n", cfg.Content)
		}
	}

	data, err = source.Load(ctx, cfg.Content)
	if err != nil {
		err = errors.Wrap(err, "failed to load content")
		return cfg, data, err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d projects, %d skill categories, %d ecosystem nodes, %d roles\n",
			len(data.Projects), len(data.SkillCategories), len(data.Ecosystem.Nodes), len(data.Roles))
	}

	return cfg, data, err
}
