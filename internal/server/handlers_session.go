package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/catalog"
	"github.com/meltforce/gymlog/internal/metrics"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/session"
)

// sessionError maps tracker sentinels to HTTP statuses.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidSet):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, session.ErrEmptyWorkout):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("session operation", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	active := s.tracker.Active()
	if active == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationStart).Inc()
	writeJSON(w, http.StatusCreated, s.tracker.Start(r.Context(), req.Name))
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	done, err := s.tracker.Finish(r.Context(), req.Notes)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationFinish).Inc()
	writeJSON(w, http.StatusOK, done)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Cancel(r.Context()); err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationCancel).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionAddExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExerciseID string `json:"exerciseId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	exercise, ok := catalog.Find(s.store.CustomExercises(r.Context()), req.ExerciseID)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown exercise id")
		return
	}

	updated, err := s.tracker.AddExercise(r.Context(), exercise)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationAddExercise).Inc()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSessionRemoveExercise(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tracker.RemoveExercise(r.Context(), chi.URLParam(r, "logID"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationRemoveExercise).Inc()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	var in session.SetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := s.tracker.LogSet(r.Context(), chi.URLParam(r, "logID"), in)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationLogSet).Inc()
	metrics.SetsLoggedTotal.Inc()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var patch models.SetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := s.tracker.UpdateSet(r.Context(), chi.URLParam(r, "logID"), chi.URLParam(r, "setID"), patch)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationUpdateSet).Inc()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tracker.DeleteSet(r.Context(), chi.URLParam(r, "logID"), chi.URLParam(r, "setID"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	metrics.SessionMutationsTotal.WithLabelValues(metrics.MutationDeleteSet).Inc()
	writeJSON(w, http.StatusOK, updated)
}
