// Package server is the form-based front end: upload a PDF, extract, review,
// download the spreadsheet.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/export"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the extraction form.
type Server struct {
	echo     *echo.Echo
	cfg      *common.Config
	proc     *pipeline.Processor
	exporter *export.Service
	sessions *SessionStore
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewServer wires routes and middleware around an already built processor.
func NewServer(cfg *common.Config, proc *pipeline.Processor, exporter *export.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if proc == nil {
		return nil, errors.New("processor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxUploadMB)))

	s := &Server{
		echo:     e,
		cfg:      cfg,
		proc:     proc,
		exporter: exporter,
		sessions: NewSessionStore(),
		tmpl:     tmpl,
		logger:   logger,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/", s.handleIndex, s.withSession)
	s.echo.POST("/extract", s.handleExtract, s.withSession)
	s.echo.GET("/download", s.handleDownload, s.withSession)
	s.echo.POST("/clear", s.handleClear, s.withSession)
}

// Echo exposes the underlying router.
func (s *Server) Echo() *echo.Echo { return s.echo }

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("server.start", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server.shutdown")
	return s.echo.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			c.SetRequest(req.WithContext(common.WithRequestID(req.Context(), rid)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http.request",
				"method", req.Method,
				"uri", req.RequestURI,
				"status", c.Response().Status,
				"elapsed_ms", time.Since(start).Milliseconds(),
				"request_id", rid,
			)
			return nil
		}
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
