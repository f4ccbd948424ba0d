package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *session.Tracker
	store   *storage.Store
	cfg     *config.Config
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(tracker *session.Tracker, store *storage.Store, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		tracker: tracker,
		store:   store,
		cfg:     cfg,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics)
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		// Exercise catalog
		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleAddExercise)

		// Workout history
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/export", s.handleExportCSV)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)

		// Active session
		r.Get("/session", s.handleGetSession)
		r.Post("/session", s.handleStartSession)
		r.Post("/session/finish", s.handleFinishSession)
		r.Delete("/session", s.handleCancelSession)
		r.Post("/session/exercises", s.handleSessionAddExercise)
		r.Delete("/session/exercises/{logID}", s.handleSessionRemoveExercise)
		r.Post("/session/exercises/{logID}/sets", s.handleLogSet)
		r.Patch("/session/exercises/{logID}/sets/{setID}", s.handleUpdateSet)
		r.Delete("/session/exercises/{logID}/sets/{setID}", s.handleDeleteSet)

		// Derived statistics
		r.Get("/stats/weekly", s.handleWeeklyStats)
		r.Get("/stats/user", s.handleGetUserStats)
		r.Put("/stats/user", s.handleUpdateUserStats)
		r.Get("/progress", s.handleProgress)

		// Plate calculator
		r.Get("/plates", s.handlePlates)
	})
}
