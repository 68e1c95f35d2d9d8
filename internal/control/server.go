package control

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/cloud-jukebox/internal/config"
	"github.com/oshokin/cloud-jukebox/internal/logger"
	"github.com/oshokin/cloud-jukebox/internal/service/jukebox"
	"github.com/oshokin/cloud-jukebox/internal/utils"
)

const (
	loopbackAddress   = "127.0.0.1"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server runs the control surface on the loopback address and, optionally, on the LAN address.
type Server struct {
	cfg        config.ControlConfig
	controller Controller
	engine     *gin.Engine

	servers  []*http.Server
	bound    []string
	serving  sync.WaitGroup
	stopOnce sync.Once
}

// NewServer creates a control surface server for a session.
func NewServer(cfg config.ControlConfig, controller Controller, handler *Handler) *Server {
	return &Server{
		cfg:        cfg,
		controller: controller,
		engine:     handler.NewEngine(),
	}
}

// Addresses returns the host:port pairs the server listens on.
func (s *Server) Addresses(ctx context.Context) []string {
	port := strconv.Itoa(s.cfg.Port)
	addresses := []string{net.JoinHostPort(loopbackAddress, port)}

	if !s.cfg.BindLAN {
		return addresses
	}

	lanAddress, err := utils.LocalIPAddress()
	if err != nil {
		logger.Warnf(ctx, "Control surface is available on loopback only: %v", err)

		return addresses
	}

	return append(addresses, net.JoinHostPort(lanAddress, port))
}

// Start binds every address and serves until Stop is called or the session ends.
// A bind failure on the loopback address is returned; other bind failures are logged.
func (s *Server) Start(ctx context.Context) error {
	listenConfig := new(net.ListenConfig)

	for i, address := range s.Addresses(ctx) {
		listener, err := listenConfig.Listen(ctx, "tcp", address)
		if err != nil {
			if i == 0 {
				s.Stop(ctx)

				return fmt.Errorf("failed to listen on %s: %w", address, err)
			}

			logger.Warnf(ctx, "Failed to listen on %s: %v", address, err)

			continue
		}

		server := &http.Server{
			Handler:           s.engine,
			ReadHeaderTimeout: readHeaderTimeout,
		}

		s.servers = append(s.servers, server)
		s.bound = append(s.bound, listener.Addr().String())
		s.serving.Add(1)

		go func() {
			defer s.serving.Done()

			logger.Infof(ctx, "control surface listening on http://%s/", listener.Addr())

			if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Errorf(ctx, "Control surface on %s stopped: %v", listener.Addr(), serveErr)
			}
		}()
	}

	go func() {
		select {
		case <-s.controller.Done():
		case <-ctx.Done():
		}

		s.Stop(ctx)
	}()

	return nil
}

// BoundAddresses returns the addresses the server listens on after Start.
func (s *Server) BoundAddresses() []string {
	return s.bound
}

// Stop shuts every listener down and waits for the servers to return.
// It is safe to call more than once.
func (s *Server) Stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		for _, server := range s.servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warnf(ctx, "Failed to shut down the control surface: %v", err)
			}
		}

		s.serving.Wait()
	})
}

// SessionHook returns a hook that runs the control surface for the duration of a play session.
func SessionHook(cfg config.ControlConfig, gatherer prometheus.Gatherer) jukebox.SessionHook {
	return func(ctx context.Context, j *jukebox.Jukebox) (func(), error) {
		if !cfg.Enabled {
			return nil, nil //nolint:nilnil // A disabled control surface has nothing to stop.
		}

		server := NewServer(cfg, j, NewHandler(j, gatherer, nil))
		if err := server.Start(ctx); err != nil {
			return nil, err
		}

		return func() {
			server.Stop(ctx)
		}, nil
	}
}
