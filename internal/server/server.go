// Package server exposes the conversion pipeline over HTTP: a convert
// endpoint that streams the finished file back, a websocket progress feed,
// and a health probe.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"url2media/internal/model"
	"url2media/internal/pipeline"
	"url2media/internal/progress"
)

// Converter runs a validated conversion request to completion.
type Converter interface {
	Convert(ctx context.Context, req model.ConversionRequest) (pipeline.Result, error)
}

// Options configures a Server.
type Options struct {
	Converter Converter
	Hub       *progress.Hub
	Log       *logrus.Logger
}

// Server is the HTTP front of the service.
type Server struct {
	e   *echo.Echo
	svc Converter
	hub *progress.Hub
	log *logrus.Entry
}

// New builds the echo application and registers all routes.
func New(opts Options) *Server {
	logger := opts.Log
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		svc: opts.Converter,
		hub: opts.Hub,
		log: logger.WithField("component", "server"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.POST("/api/convert", s.handleConvert)
	e.GET("/api/progress", s.handleProgress)
	e.GET("/healthz", s.handleHealthz)

	s.e = e
	return s
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Handler exposes the underlying handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
