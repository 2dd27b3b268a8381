package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

type CaseStatsHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
}

func NewCaseStatsHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration) *CaseStatsHttpServer {
	return &CaseStatsHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Start registers the routes and serves until SIGINT or SIGTERM.
func (s *CaseStatsHttpServer) Start() error {
	s.router.RegisterRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves on the configured address until ctx is done or the listener
// fails. A listener failure is returned; cancellation triggers a graceful
// shutdown bounded by the shutdown timeout.
func (s *CaseStatsHttpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.muxRouter,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[CaseStatsHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	log.Println("[CaseStatsHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("[CaseStatsHttpServer] Server exiting")
	return nil
}
