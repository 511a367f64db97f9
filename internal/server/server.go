// Package server exposes generation, interchange and vision import over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/config"
	"github.com/tordrt/umlgen/internal/vision"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP surface.
type Server struct {
	cfg      config.ServerConfig
	gen      config.GenerationConfig
	importer *vision.Importer
	router   *gin.Engine
	logger   *zap.Logger
}

// New builds the router. importer may be nil, in which case vision import
// answers 503.
func New(cfg *config.Config, importer *vision.Importer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg.Server,
		gen:      cfg.Generation,
		importer: importer,
		logger:   logger.Named("server"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.Use(cors.New(corsConfig(cfg.Server)))
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	s.routes(router)
	s.router = router
	return s
}

func corsConfig(cfg config.ServerConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	api.POST("/generate/:target", s.generate)
	api.POST("/interchange/import", s.importInterchange)
	api.POST("/interchange/export", s.exportInterchange)
	api.POST("/vision/import", s.importVision)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
