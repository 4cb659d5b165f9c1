// Otaku - Anime and Manga Title Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otaku

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// DefaultShutdownTimeout bounds graceful HTTP shutdown when none is given.
const DefaultShutdownTimeout = 10 * time.Second

// HTTPServer is the subset of *http.Server the service drives.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerConfig configures an HTTPServerService.
type HTTPServerConfig struct {
	// Addr is the host:port to bind. Port 0 picks a free port.
	Addr string

	// ShutdownTimeout bounds graceful shutdown. Zero selects DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

// HTTPServerService binds a listener and serves the query API under a
// supervisor. Bind failures are returned from Serve so the supervisor
// retries them with backoff.
//
//	server := &http.Server{Handler: router.SetupChi()}
//	svc := services.NewHTTPServerService(server, services.HTTPServerConfig{
//		Addr:            cfg.Server.Addr(),
//		ShutdownTimeout: cfg.Server.ShutdownTimeout,
//	}, logging.Component("supervisor"))
//	tree.AddAPIService(svc)
type HTTPServerService struct {
	server HTTPServer
	config HTTPServerConfig
	logger zerolog.Logger
	listen func(network, address string) (net.Listener, error)

	mu    sync.RWMutex
	bound net.Addr
}

// NewHTTPServerService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, config HTTPServerConfig, logger zerolog.Logger) *HTTPServerService {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &HTTPServerService{
		server: server,
		config: config,
		logger: logger.With().Str("service", "http-server").Logger(),
		listen: net.Listen,
	}
}

// Addr returns the bound address while the server is serving, nil otherwise.
func (h *HTTPServerService) Addr() net.Addr {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bound
}

func (h *HTTPServerService) setAddr(addr net.Addr) {
	h.mu.Lock()
	h.bound = addr
	h.mu.Unlock()
}

// Serve implements suture.Service.
//
// It returns ctx.Err() after a graceful shutdown. A server closed from
// outside the supervisor returns suture.ErrDoNotRestart since a closed
// *http.Server cannot serve again.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	ln, err := h.listen("tcp", h.config.Addr)
	if err != nil {
		return fmt.Errorf("http server listen on %s: %w", h.config.Addr, err)
	}
	h.setAddr(ln.Addr())
	defer h.setAddr(nil)

	h.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			h.logger.Warn().Msg("HTTP server closed outside the supervisor")
			return suture.ErrDoNotRestart
		}
		return fmt.Errorf("http server failed: %w", err)

	case <-ctx.Done():
		// ctx is already canceled; shutdown needs its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.ShutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		<-errCh
		h.logger.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor event logs.
func (h *HTTPServerService) String() string {
	return "http-server"
}
