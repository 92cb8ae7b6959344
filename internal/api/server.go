package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mlodden/bookmarkd/internal/auth"
	"github.com/mlodden/bookmarkd/internal/bookmark"
	"github.com/mlodden/bookmarkd/internal/infrastructure/config"
	"github.com/mlodden/bookmarkd/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.ServerConfig
	Logger    *logging.Logger
	Issuer    *auth.Issuer
	Users     auth.UserRepository
	Auth      *auth.Service
	Bookmarks *bookmark.Service
	Version   string
}

// Server is the HTTP API server for bookmarkd.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg       config.ServerConfig
	logger    *logging.Logger
	issuer    *auth.Issuer
	users     auth.UserRepository
	auth      *auth.Service
	bookmarks *bookmark.Service
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Issuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Bookmarks == nil {
		return nil, fmt.Errorf("bookmark service is required")
	}

	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		issuer:    deps.Issuer,
		users:     deps.Users,
		auth:      deps.Auth,
		bookmarks: deps.Bookmarks,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to 10 seconds
// for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// Handler returns the configured router without starting a listener.
// Used by tests to drive the server through httptest.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}
