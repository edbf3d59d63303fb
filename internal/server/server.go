// Package server serves the dashboard page, its JSON API, the rendered charts
// and export downloads over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// Options configures a Server.
type Options struct {
	Selection selection.Options
	// Encoding is used for CSV downloads.
	Encoding dataset.Encoding
	DevMode  bool
	Logger   *slog.Logger
}

// Server wraps the gin engine. The dataset is shared read-only between
// handler goroutines; selection state comes from each request.
type Server struct {
	router *gin.Engine
	ds     *dataset.Dataset
	opts   Options
	log    *slog.Logger
}

// New builds a server over ds.
func New(ds *dataset.Dataset, opts Options) *Server {
	if !opts.DevMode && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Encoding == "" {
		opts.Encoding = dataset.CP949
	}
	s := &Server{
		router: gin.New(),
		ds:     ds,
		opts:   opts,
		log:    opts.Logger,
	}
	s.router.Use(requestLogger(s.log), recovery(s.log))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.Page)
	s.router.GET("/healthz", s.Health)

	api := s.router.Group("/api")
	{
		s.RegisterRoutes(api)
	}

	s.router.GET("/chart/bar.svg", s.BarChart)
	s.router.GET("/chart/heatmap.svg", s.Heatmap)
	s.router.GET("/export", s.Export)
}

// RegisterRoutes registers the JSON API routes.
func (s *Server) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", s.GetState)
	router.GET("/summary", s.GetSummary)
	router.GET("/charts", s.GetCharts)
	router.GET("/detail", s.GetDetail)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "records", s.ds.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
