// Package server exposes the portfolio content, graph layouts, résumé
// downloads and the contact form over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio/pkg/contact"
	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/logger"
	"github.com/nikogura/portfolio/pkg/resume"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Server modes.
const (
	ModeDev  = "dev"
	ModeProd = "prod"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Data           content.Dataset
	Log            *logger.Logger
	Submitter      contact.Submitter
	Canvas         graph.Canvas
	Margin         float64 // résumé page margin in points
	Mode           string
	AllowedOrigins []string
	FrameInterval  time.Duration // live simulation pacing, DefaultFrameInterval when zero
}

// Server is the portfolio HTTP service.
type Server struct {
	Engine *gin.Engine

	data      content.Dataset
	log       *logger.Logger
	submitter contact.Submitter
	canvas    graph.Canvas
	margin    float64
	graphs    map[string]*graph.Graph

	allowedOrigins []string
	frameInterval  time.Duration

	layoutGroup singleflight.Group
	mu          sync.RWMutex
	layouts     map[string]graph.Result
}

// New builds every graph kind up front and registers the routes. Dangling
// links are logged, not fatal.
func New(opts Options) (s *Server, err error) {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Submitter == nil {
		opts.Submitter = contact.NewSimulatedSubmitter(contact.DefaultDelay)
	}
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = graph.DefaultCanvas
	}
	if opts.Margin <= 0 {
		opts.Margin = resume.DefaultOptions().Margin
	}

	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}

	if opts.Mode == ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	s = &Server{
		data:      opts.Data,
		log:       opts.Log,
		submitter: opts.Submitter,
		canvas:    opts.Canvas,
		margin:    opts.Margin,
		graphs:    make(map[string]*graph.Graph, len(graph.Kinds)),
		layouts:   make(map[string]graph.Result),

		allowedOrigins: opts.AllowedOrigins,
		frameInterval:  opts.FrameInterval,
	}

	for _, kind := range graph.Kinds {
		var g *graph.Graph
		g, err = graph.FromDataset(opts.Data, kind)
		if err != nil {
			err = errors.Wrapf(err, "failed to build %s graph", kind)
			return s, err
		}
		for _, d := range g.Dangling() {
			s.log.Warn("dropped graph link", "kind", kind, "source", d.Source, "target", d.Target, "reason", d.Reason)
		}
		s.graphs[kind] = g
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(s.log))
	engine.Use(CORS(opts.AllowedOrigins))
	s.Engine = engine

	s.routes()

	return s, err
}

func (s *Server) routes() {
	s.Engine.GET("/healthcheck", s.HealthCheck)

	api := s.Engine.Group("/api")
	{
		api.GET("/profile", s.GetProfile)
		api.GET("/categories", s.ListCategories)
		api.GET("/skills", s.ListSkills)
		api.GET("/projects", s.ListProjects)
		api.GET("/projects/:id", s.GetProject)
		api.GET("/roles", s.ListRoles)
		api.GET("/resume/:role", s.GetResume)
		api.POST("/contact", s.SubmitContact)

		graphs := api.Group("/graphs/:kind")
		graphs.GET("", s.GetGraph)
		graphs.GET("/nodes/:id", s.GetNode)
		graphs.GET("/image", s.GetGraphImage)
		graphs.GET("/live", s.LiveGraph)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) (err error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			err = errors.Wrapf(err, "failed to serve on %s", addr)
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	return err
}

// graphFor returns the prebuilt graph of kind.
func (s *Server) graphFor(kind string) (g *graph.Graph, err error) {
	g, found := s.graphs[kind]
	if !found {
		err = errors.Wrapf(graph.ErrUnknownKind, "%s", kind)
	}
	return g, err
}

// layoutFor computes, or returns the cached, layout of kind. Concurrent
// requests for the same layout share one computation.
func (s *Server) layoutFor(ctx context.Context, kind, name string) (g *graph.Graph, result graph.Result, err error) {
	g, err = s.graphFor(kind)
	if err != nil {
		return g, result, err
	}

	layout, err := graph.LayoutByName(name)
	if err != nil {
		return g, result, err
	}

	key := kind + "/" + layout.Name()

	s.mu.RLock()
	cached, found := s.layouts[key]
	s.mu.RUnlock()
	if found {
		result = cached
		return g, result, err
	}

	// Detached so one cancelled request does not fail the others sharing it.
	detached := context.WithoutCancel(ctx)
	v, err, _ := s.layoutGroup.Do(key, func() (interface{}, error) {
		computed, applyErr := layout.Apply(detached, g, s.canvas)
		if applyErr != nil {
			return computed, applyErr
		}
		s.mu.Lock()
		s.layouts[key] = computed
		s.mu.Unlock()
		return computed, nil
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to lay out %s graph", kind)
		return g, result, err
	}

	result = v.(graph.Result)
	return g, result, err
}

// resumeOptions returns fresh résumé options; the fpdf measurer is not safe
// to share between requests.
func (s *Server) resumeOptions() (opts resume.Options) {
	opts = resume.DefaultOptions()
	opts.Margin = s.margin
	return opts
}
