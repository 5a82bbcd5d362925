package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/portfolio/pkg/contact"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/logger"
	"github.com/nikogura/portfolio/pkg/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio HTTP service",
	Long: `Run the portfolio HTTP service.

Serves the profile, projects, graph layouts (JSON, PNG and a live websocket
simulation), résumé downloads and the simulated contact form under /api.

Example:
  portfolio serve
  portfolio serve --addr :9090 --content ./portfolio.yaml
  PORTFOLIO_MODE=prod portfolio serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, data, err := setup(ctx)
	if err != nil {
		return err
	}

	mode := cfg.Server.Mode
	if getVerbose() {
		mode = logger.ModeDev
	}

	log, err := logger.New(mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(server.Options{
		Data:           data,
		Log:            log,
		Submitter:      contact.NewSimulatedSubmitter(time.Duration(cfg.Contact.DelayMS) * time.Millisecond),
		Canvas:         graph.Canvas{Width: cfg.Graph.Width, Height: cfg.Graph.Height, Padding: cfg.Graph.Padding},
		Margin:         cfg.Resume.Margin,
		Mode:           cfg.Server.Mode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create server")
		return err
	}

	log.Info("portfolio ready", "projects", len(data.Projects), "roles", len(data.Roles), "mode", cfg.Server.Mode)

	err = srv.Run(ctx, addr)
	return err
}
