// Package server exposes the pipeline snapshot as a JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the HTTP front of a pipeline.
type Server struct {
	router   *gin.Engine
	pipeline *pipeline.Pipeline
	log      *zap.Logger
}

// New builds the router. debug keeps gin in debug mode.
func New(p *pipeline.Pipeline, log *zap.Logger, debug bool) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		router:   gin.New(),
		pipeline: p,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID(), accessLog(s.log), recovery(s.log), cors())

	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/crime/options", s.crimeOptions)
		api.GET("/crime", s.crime)
		api.GET("/cctv/years", s.cameraYears)
		api.GET("/cctv", s.camera)
		api.GET("/household", s.household)
		api.GET("/merged", s.merged)
		api.GET("/correlation", s.correlation)
		api.GET("/chart/correlation.png", s.correlationChart)
	}
	s.router.NoRoute(func(c *gin.Context) {
		errorResponse(c, http.StatusNotFound, codeNotFound, "not found")
	})
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
