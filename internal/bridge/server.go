package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/logging"
	"github.com/muurk/esplink/internal/notify"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the device client to browser applications over HTTP and
// streams toasts to them over a websocket.
type Server struct {
	engine *gin.Engine
	client *device.Client
	relay  *notify.Relay
}

// NewServer creates a bridge around client. The relay should also be
// registered as a renderer on the Board that client notifies, so that
// toasts raised by bridge calls reach websocket listeners.
func NewServer(client *device.Client, relay *notify.Relay) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	s := &Server{
		engine: engine,
		client: client,
		relay:  relay,
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.Health)

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.Health)
		v1.GET("/ping", s.Ping)
		v1.GET("/device", s.Device)
	}

	s.engine.GET("/ws/toasts", gin.WrapH(s.relay))
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Bridge listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("bridge server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info("Bridge shutting down")
	s.relay.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("bridge shutdown failed: %w", err)
	}
	return nil
}
