package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"tokenanalysis/config"
	"tokenanalysis/internal/analysis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(svc *analysis.Service, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(logger), RequestLogger(logger))

	NewAnalysisHandler(svc, logger).RegisterRoutes(router)
	NewStreamHandler(svc, logger, svc.Cache().TTL()).RegisterRoutes(router)

	return router
}

type Server struct {
	cfg    config.ServerConfig
	router *gin.Engine
	logger *zap.Logger
}

func New(cfg config.ServerConfig, svc *analysis.Service, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Mode)
	return &Server{
		cfg:    cfg,
		router: NewRouter(svc, logger),
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// Request contexts derive from ctx, so open streams end with it.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
