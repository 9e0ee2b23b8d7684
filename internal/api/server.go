package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hypoplan/app"
)

// Dependencies are the services the API exposes
type Dependencies struct {
	Deconstructor *app.Deconstructor
	Planner       *app.Planner
	SQLService    *app.SQLService
}

// Options tune the HTTP surface
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
}

// Server is the HTTP front of the planner
type Server struct {
	router *gin.Engine
	deps   Dependencies
	opts   Options
}

// NewServer creates a server and registers every route
func NewServer(deps Dependencies, opts Options) *Server {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	router := gin.New()
	router.Use(gin.Logger(), RequestID(), Metrics(), gin.CustomRecovery(recoveryHandler))

	s := &Server{router: router, deps: deps, opts: opts}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/initialize", s.handleInitialize)

	s.router.POST("/plan_hypothesis", s.handlePlanHypothesis)
	s.router.POST("/deconstruct", s.handleDeconstruct)
	s.router.POST("/generate_sql", s.handleGenerateSQL)
	s.router.POST("/analyze_data", s.handleAnalyzeData)
	s.router.POST("/generate_dashboard_insights", s.handleDashboardInsights)

	if s.opts.MetricsEnabled {
		s.router.GET(s.opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	s.router.NoRoute(s.handleNoRoute)
}

// Handler returns the routed handler, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[Server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
