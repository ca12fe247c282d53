package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"emotion-audio/internal/api/handlers"
	"emotion-audio/internal/api/middleware"
	"emotion-audio/internal/app/upload"
	"emotion-audio/internal/metrics"
)

// Config represents API server configuration
type Config struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Environment     string
}

// Dependencies are the long-lived objects shared by all requests
type Dependencies struct {
	Service   handlers.Analyzer
	Validator *upload.Validator
	Store     *upload.Store
	Metrics   metrics.Recorder
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(deps.Logger, "/health"))
	router.Use(middleware.ErrorHandler(deps.Logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	healthHandler := handlers.NewHealthHandler(deps.Service)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Service, deps.Validator, deps.Store, deps.Metrics, deps.Logger)

	router.GET("/health", healthHandler.Health)
	router.POST("/analyze-audio", analyzeHandler.Analyze)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return router
}

// NewServer creates a new API server
func NewServer(config Config, deps Dependencies) *Server {
	// Set Gin mode based on environment
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := NewRouter(deps)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     deps.Logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server",
			zap.String("address", s.httpServer.Addr),
			zap.String("environment", s.config.Environment),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
