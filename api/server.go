package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"backendjobs/application"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Server exposes the job trigger over HTTP
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a new HTTP server. Every route lives under /api.
func NewServer(addr, cronAuthToken string, dispatcher application.JobDispatcher) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	h := &handlers{
		dispatcher: dispatcher,
		now:        time.Now,
	}

	api := router.Group("/api")
	{
		api.GET("/ping", h.ping)

		jobs := api.Group("/execute-job", requireCronAuth(cronAuthToken))
		jobs.POST("", h.executeJob)
		jobs.POST("/:date", h.executeJob)
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
