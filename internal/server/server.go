package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"mediashelf/internal/api"
	"mediashelf/internal/auth"
	"mediashelf/internal/config"
	"mediashelf/internal/datastore"
	"mediashelf/internal/github"
	"mediashelf/internal/logging"
)

const (
	// SessionHeader carries a refreshed session token.
	SessionHeader = "X-Session-Token"
	// RequestIDHeader carries the request identifier.
	RequestIDHeader = "X-Request-ID"
	// OriginHeader names the source of the catalog returned by GET /api/data.
	OriginHeader = "X-Catalog-Origin"

	maxJSONBody    = 1 << 20
	maxCatalogBody = 32 << 20
)

// Deps are the services the server routes to.
type Deps struct {
	Catalog   *api.CatalogService
	Data      *datastore.Store
	Gate      *auth.Gate
	Publisher *github.Publisher
}

// Server is the local HTTP API.
type Server struct {
	bind        string
	defaultSort string
	deps        Deps
	logger      *slog.Logger

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New builds a Server bound to cfg.Server.Bind.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Catalog == nil || deps.Data == nil || deps.Gate == nil || deps.Publisher == nil {
		return nil, errors.New("server: catalog, data, gate and publisher are required")
	}
	bind := strings.TrimSpace(cfg.Server.Bind)
	if bind == "" {
		return nil, errors.New("server: bind address is required")
	}

	s := &Server{
		bind:        bind,
		defaultSort: cfg.Display.Sort,
		deps:        deps,
		logger:      logging.NewComponentLogger(logger, "api-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/items", s.handleItems)
	mux.HandleFunc("/api/meta", s.handleMeta)
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.authMiddleware(s.handleLogout))
	mux.HandleFunc("/api/data", s.handleData)
	mux.HandleFunc("/api/commit", s.authMiddleware(s.handleCommit))
	s.handler = s.requestMiddleware(mux)

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens and serves in the background until ctx is done or Stop is
// called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run starts the server and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop shuts the server down, waiting up to five seconds for in-flight
// requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}
