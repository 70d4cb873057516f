// Copyright 2025 The kbforge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kbforge/kbforge/answer"
	"github.com/kbforge/kbforge/docs"
	"github.com/kbforge/kbforge/search"
	"github.com/kbforge/kbforge/teams"
)

// Server is the HTTP surface over the retrieval and lifecycle services.
type Server struct {
	echo   *echo.Echo
	logger *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewServer wires the services into an echo application. Every service
// is optional; routes for absent services are simply not registered.
func NewServer(
	searcher *search.Searcher,
	answerer *answer.Answerer,
	docService *docs.Service,
	teamService *teams.Service,
	opts ...ServerOption,
) *Server {
	s := &Server{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := httpError(err)
		req := c.Request()
		s.logger.Warn("request failed",
			"status", he.Code, "method", req.Method, "path", req.URL.Path, "err", err)
		if !c.Response().Committed {
			_ = c.JSON(he.Code, map[string]any{"error": fmt.Sprint(he.Message)})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	api := e.Group("/api")

	if searcher != nil || answerer != nil {
		qh := &QueryHandler{Searcher: searcher, Answerer: answerer}
		qh.Register(api)
	}
	if docService != nil {
		dh := &DocumentsHandler{Docs: docService}
		dh.Register(api)
	}
	if teamService != nil {
		th := &TeamsHandler{Teams: teamService}
		th.Register(api)
	}

	s.echo = e
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the given address and serves until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
