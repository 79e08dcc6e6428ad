// Package api serves the lesson catalog, quiz rounds, progress, and the
// AI helpers over HTTP for browser or mobile front ends.
package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/round"
	"github.com/tensebunny/tensebunny/internal/store"
)

// Deps are the services behind the API. Progress and AI are required;
// the stores may be nil.
type Deps struct {
	Progress *progress.Updater
	Themes   progress.ThemeStore
	Scores   progress.ScoreBoard
	Events   store.EventRepo
	AI       *gateway.Gateway

	// Rand drives question sampling. Nil uses the global generator.
	Rand *rand.Rand
}

// Server is the HTTP front end.
type Server struct {
	cfg      Config
	deps     Deps
	sessions *registry
	router   chi.Router

	mu        sync.Mutex
	placement *quiz.Report
}

// NewServer wires the routes.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	s := &Server{cfg: cfg, deps: deps}
	s.sessions = newRegistry(cfg, deps.Rand, s.evicted)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tenses", s.listTenses)
		r.Get("/tenses/{id}", s.getTense)
		r.Get("/modes", s.listModes)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.startSession)
			r.Get("/{id}", s.getSession)
			r.Post("/{id}/answers", s.submitAnswer)
			r.Post("/{id}/advance", s.advanceSession)
			r.Post("/{id}/complete", s.completeSession)
			r.Delete("/{id}", s.abandonSession)
		})

		r.Get("/progress", s.getProgress)
		r.Post("/login", s.login)
		r.Get("/theme", s.getTheme)
		r.Put("/theme", s.putTheme)
		r.Get("/ranking", s.ranking)

		r.Post("/chat", s.chat)
		r.Post("/speech", s.speech)
		r.Get("/mascot", s.mascot)
	})
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully and stops every running round clock.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops the clocks of all rounds in flight.
func (s *Server) Close() {
	s.sessions.close()
}

// evicted books a round the registry dropped before it was completed as
// abandoned. Completed rounds nobody claimed are let go silently.
func (s *Server) evicted(ls *liveSession) {
	sess := ls.session
	if sess.Phase() == quiz.PhaseCompleted {
		return
	}
	sess.Abandon()
	s.ledger().Abandon(context.Background(), ls.round, sess.Score(), sess.Len(), sess.Answered())
}

func (s *Server) ledger() round.Ledger {
	return round.Ledger{Progress: s.deps.Progress, Scores: s.deps.Scores, Events: s.deps.Events}
}

type healthView struct {
	Status       string               `json:"status"`
	Capabilities gateway.Capabilities `json:"capabilities"`
	Sessions     int                  `json:"sessions"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthView{
		Status:       "ok",
		Capabilities: s.deps.AI.Capabilities(),
		Sessions:     s.sessions.len(),
	})
}

// sessionStatus maps session errors to HTTP status codes.
func sessionStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrNotAccepting),
		errors.Is(err, quiz.ErrStaleAnswer),
		errors.Is(err, quiz.ErrNoFeedback),
		errors.Is(err, quiz.ErrNotCompleted),
		errors.Is(err, quiz.ErrAlreadyReported):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
