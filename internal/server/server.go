// Package server exposes the journal, import, sync, and settings
// operations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"syscall"

	"github.com/daylog/daylog/internal/config"
	"github.com/daylog/daylog/internal/logger"
	"github.com/daylog/daylog/internal/repository"
	"github.com/daylog/daylog/internal/settings"
	"github.com/daylog/daylog/internal/syncer"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo         *echo.Echo
	cfg          *config.Config
	journalRepo  *repository.JournalRepository
	settings     *settings.Service
	orchestrator *syncer.Orchestrator
}

func New(cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:         e,
		cfg:          cfg,
		journalRepo:  repository.NewJournalRepository(),
		settings:     settings.NewService(cfg),
		orchestrator: syncer.NewOrchestrator(cfg),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.File("/", filepath.Join(s.cfg.BasePath, s.cfg.IndexPath))
	s.echo.Static("/static", filepath.Join(s.cfg.BasePath, s.cfg.StaticPath))

	g := s.echo.Group("/journal")
	g.POST("", s.handleCreateJournal)
	g.GET("", s.handleListJournals)
	g.GET("/:id", s.handleGetJournal)
	g.PUT("/:id", s.handleUpdateJournal)
	g.DELETE("/:id", s.handleDeleteJournal)
	g.POST("/import", s.handleImportZip)
	g.POST("/sync", s.handleSync)

	s.echo.GET("/settings", s.handleGetSettings)
	s.echo.POST("/settings", s.handleUpdateSettings)
}

// Start binds the configured port, walking up to the next free one
// when it is taken.
func (s *Server) Start() error {
	port := s.cfg.Port
	for {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			if errors.Is(err, syscall.EADDRINUSE) {
				logger.Log.Debug("port taken, trying next", zap.Int("port", port))
				port++
				continue
			}
			return fmt.Errorf("failed to listen: %w", err)
		}

		s.echo.Listener = ln
		logger.Log.Info("server started",
			zap.String("addr", fmt.Sprintf("http://127.0.0.1:%d", port)))
		return s.echo.Start("")
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
