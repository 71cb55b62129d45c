// Package server exposes the editor over HTTP under /api/v1.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lowaak/smart-trainer/workout-editor/internal/editor"
	"github.com/lowaak/smart-trainer/workout-editor/internal/events"
	"github.com/lowaak/smart-trainer/workout-editor/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/workout-editor/internal/mode"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server holds dependencies for HTTP handlers
type Server struct {
	editor  *editor.Editor
	bike    func() mode.BikeMode
	changes *events.ChannelEvent[editor.Change]
	logger  *log.Logger
	router  chi.Router

	unlisten func()
}

// New creates a Server with all routes configured. bike supplies the rider used for presets.
func New(ed *editor.Editor, bike func() mode.BikeMode, logger *log.Logger) *Server {
	if ed == nil {
		panic("Server: editor cannot be nil")
	}
	if logger == nil {
		panic("Server: logger cannot be nil")
	}
	s := &Server{
		editor:  ed,
		bike:    bike,
		changes: events.NewChannelEvent[editor.Change](false),
		logger:  logger,
		router:  chi.NewRouter(),
	}
	s.unlisten = ed.Listen(s.changes.Notify)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close detaches the server from the editor
func (s *Server) Close() {
	s.unlisten()
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.logger))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workout", s.handleGetWorkout)
		r.Put("/workout/metadata", s.handleSetMetadata)
		r.Post("/workout/reset", s.handleReset)
		r.Post("/workout/text", s.handleImportText)
		r.Get("/workout.zwo", s.handleExportXML)
		r.Put("/workout.zwo", s.handleLoadXML)
		r.Get("/stats", s.handleStats)
		r.Get("/events", s.handleEvents)

		r.Post("/text/parse", s.handleParseText)

		r.Post("/intervals", s.handleAddInterval)
		r.Route("/intervals/{id}", func(r chi.Router) {
			r.Use(s.requireInterval)
			r.Delete("/", s.handleRemoveInterval)
			r.Post("/move", s.handleMoveInterval)
			r.Post("/duration", s.handleUpdateDuration)
			r.Post("/intensity", s.handleUpdateIntensity)
			r.Post("/duplicate", s.handleDuplicateInterval)
		})

		r.Post("/instructions", s.handleAddInstruction)
		r.Route("/instructions/{id}", func(r chi.Router) {
			r.Use(s.requireInstruction)
			r.Put("/", s.handleUpdateInstruction)
			r.Delete("/", s.handleRemoveInstruction)
		})

		r.Get("/presets", s.handleListPresets)
		r.Post("/presets/{name}/load", s.handleLoadPreset)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := go_func_utils.SafeGoErr(s.logger, "http server", srv.ListenAndServe)
	s.logger.Printf("Server: listening on %s", addr)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-done; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Printf("Server: stopped")
	return nil
}
