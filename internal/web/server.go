package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/kennethkenn/Fitness-Log/internal/database"
	"github.com/kennethkenn/Fitness-Log/internal/tracker"
	"github.com/kennethkenn/Fitness-Log/internal/web/handlers"
	"github.com/kennethkenn/Fitness-Log/internal/web/middleware"
	"github.com/kennethkenn/Fitness-Log/internal/web/sse"
)

// Server represents the web server
type Server struct {
	db         *database.DB
	port       int
	bind       string
	allowedNet *net.IPNet
	router     *chi.Mux
	sseBroker  *sse.Broker
	handlers   *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(db *database.DB, service *tracker.Service, port int, bind string, allowedNet *net.IPNet) *Server {
	s := &Server{
		db:         db,
		port:       port,
		bind:       bind,
		allowedNet: allowedNet,
		router:     chi.NewRouter(),
		sseBroker:  sse.NewBroker(),
		handlers:   handlers.New(service),
	}

	s.handlers.SetSSEBroker(s.sseBroker)
	s.setupRoutes()

	return s
}

// SSEBroker returns the SSE broker for broadcasting events
func (s *Server) SSEBroker() *sse.Broker {
	return s.sseBroker
}

// Router returns the HTTP handler, used by tests
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AllowSubnet(s.allowedNet))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handlers.ExercisesList)
			r.Post("/", s.handlers.ExerciseCreate)
			r.Put("/{id}", s.handlers.ExerciseUpdate)
			r.Delete("/{id}", s.handlers.ExerciseDelete)
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", s.handlers.WorkoutsList)
			r.Post("/", s.handlers.WorkoutLog)
			r.Get("/{id}", s.handlers.WorkoutGet)
		})

		r.Get("/stats/volume", s.handlers.StatsVolume)
		r.Get("/events", s.sseBroker.ServeHTTP)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Start runs the HTTP server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout disabled (0) to allow SSE long-lived connections
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		// Stop SSE broker first to close all client connections gracefully
		s.sseBroker.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
