package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pageza/healthcoach/backend/config"
	"github.com/pageza/healthcoach/backend/internal/api"
	"github.com/pageza/healthcoach/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// Option customizes the server at construction
type Option func(*options)

type options struct {
	rateLimiter *middleware.RateLimiter
}

// WithRateLimiter guards the meal routes with limiter
func WithRateLimiter(limiter *middleware.RateLimiter) Option {
	return func(o *options) {
		o.rateLimiter = limiter
	}
}

// New creates a new server instance serving analyzer over HTTP
func New(cfg *config.Config, analyzer api.MealAnalyzer, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.OTelServiceName),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	var mealMiddleware []gin.HandlerFunc
	if o.rateLimiter != nil {
		mealMiddleware = append(mealMiddleware, o.rateLimiter.Middleware())
	}
	api.RegisterRoutes(router, analyzer, mealMiddleware...)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until the server is shut down
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
