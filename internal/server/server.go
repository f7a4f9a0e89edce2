package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aduvert/recettes/internal/database"
)

// Server wraps the HTTP server and the store handle it owns.
type Server struct {
	http   *http.Server
	db     *gorm.DB
	logger zerolog.Logger
}

// New creates a new server instance listening on addr.
func New(addr string, router *gin.Engine, db *gorm.DB, logger zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		db:     db,
		logger: logger,
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store handle.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	if err := database.Close(s.db); err != nil {
		return err
	}
	s.logger.Info().Msg("database closed")
	return nil
}
