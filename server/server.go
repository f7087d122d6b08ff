// Package server exposes the catalog and the contact form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/faceframebeauty/faceframe/contact"
	"github.com/faceframebeauty/faceframe/content"
)

// Config holds the listener settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AssetsDir       string
	Watch           bool // reload content on file changes
}

// Server serves the site API.
type Server struct {
	cfg     Config
	store   *content.Store
	mailer  contact.Mailer
	logger  *zap.Logger
	handler http.Handler
}

// New builds a Server. A nil mailer logs submissions; a nil logger
// discards output.
func New(cfg Config, store *content.Store, mailer contact.Mailer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = contact.LogMailer{Logger: logger}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{cfg: cfg, store: store, mailer: mailer, logger: logger}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on cfg.Addr and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// cfg.ShutdownTimeout. Content watching runs alongside when enabled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ErrorLog:          zap.NewStdLog(s.logger.Named("http")),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	if s.cfg.Watch && s.store.Dir() != "" {
		g.Go(func() error {
			if err := s.store.Watch(gctx); err != nil {
				s.logger.Warn("content watch stopped", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
