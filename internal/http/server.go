package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// ServerConfig configures the listener and the shared middleware.
type ServerConfig struct {
	Address         string
	CORSOrigins     []string
	UseHTTP2        bool
	ShutdownTimeout time.Duration
}

// Server owns the echo instance.
type Server struct {
	Echo *echo.Echo

	cfg    ServerConfig
	logger interfaces.Logger
}

// NewServer builds an echo instance with the error handler, the middleware
// chain and the site routes registered.
func NewServer(cfg ServerConfig, site *SiteHandlers, logger interfaces.Logger) *Server {
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.DisableHTTP2 = !cfg.UseHTTP2
	e.HTTPErrorHandler = ErrorHandler(logger)

	s := &Server{Echo: e, cfg: cfg, logger: logger}
	s.setupMiddlewares()
	if site != nil {
		site.Register(e)
	}
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Pre(middleware.RemoveTrailingSlash())
	s.Echo.Use(RequestID())
	s.Echo.Use(RequestFields())
	s.Echo.Use(RequestLogger(s.logger))
	s.Echo.Use(middleware.Recover())
	if len(s.cfg.CORSOrigins) > 0 {
		s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
		}))
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http.server.start", "address", s.cfg.Address)
		if err := s.Echo.Start(s.cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http.server.shutdown")
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
