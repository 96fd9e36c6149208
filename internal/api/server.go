// Package api exposes the application over HTTP for serve mode. Handlers
// are thin: they decode, call the controller, and encode — all state rules
// live in the controller itself.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/app"
	"github.com/healthsense/healthsense/internal/report"
)

// Server wires the controller and AI client into an HTTP API
type Server struct {
	controller *app.Controller
	ai         *ai.Client
	renderer   report.Renderer
}

// New creates a server. The AI client may be nil, in which case the
// summary endpoint degrades to its fallback response.
func New(controller *app.Controller, aiClient *ai.Client, renderer report.Renderer) *Server {
	if renderer == nil {
		renderer = report.TextRenderer{}
	}
	return &Server{
		controller: controller,
		ai:         aiClient,
		renderer:   renderer,
	}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/vitals", s.handleVitals).Methods("GET")
	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	api.HandleFunc("/metrics", s.handleSetMetrics).Methods("PUT")
	api.HandleFunc("/catalog", s.handleCatalog).Methods("GET")
	api.HandleFunc("/readings", s.handleCreateReading).Methods("POST")
	api.HandleFunc("/series/{metric}", s.handleSeries).Methods("GET")
	api.HandleFunc("/alerts", s.handleAlerts).Methods("GET")
	api.HandleFunc("/profile", s.handleProfile).Methods("GET")
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods("PUT")
	api.HandleFunc("/summary", s.handleSummary).Methods("POST")
	api.HandleFunc("/report", s.handleReport).Methods("GET")

	return r
}

// Start runs the HTTP server until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string, allowedOrigins []string) error {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(s.Router()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // summary endpoint waits on the model
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
