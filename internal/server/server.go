package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/domain/explorer"
	"github.com/FACorreiaa/go-worldlens/internal/app/gateway"
	"github.com/FACorreiaa/go-worldlens/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-worldlens/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	gw      gateway.Gateway
	manager *explorer.Manager
	router  http.Handler
}

// New creates a new Server instance with all dependencies
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gw, err := gateway.NewGeminiGateway(ctx, cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up AI gateway: %w", err)
	}

	manager := explorer.NewManager(gw, logger, cfg, metrics.Get())

	logger.Info("AI gateway ready", zap.String("model", cfg.Gemini.Model))

	return &Server{
		cfg:     cfg,
		logger:  logger,
		gw:      gw,
		manager: manager,
	}, nil
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Manager returns the session manager
func (s *Server) Manager() *explorer.Manager {
	return s.manager
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
