package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-api/internal/database"
	"github.com/taiwoajasa245/bible-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config
	logger  *zap.Logger
}

// NewServer constructs your app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	stats := db.Health()

	if stats["status"] != "up" {
		logger.Error("database connection failed", zap.String("error", stats["error"]))
		return nil, fmt.Errorf("database connection failed: %s", stats["error"])
	}
	logger.Info("database connection successful", zap.String("driver", db.Driver()))

	s := &Server{
		port:   cfg.Port,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}
