package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/gymlog/internal/export"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/plates"
	"github.com/meltforce/gymlog/internal/stats"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeOptional decodes a JSON body into dst, treating an absent or
// empty body as "no fields supplied". ContentLength is -1 on chunked
// requests, so absence is detected by io.EOF from the decoder rather
// than by length.
func decodeOptional(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"language": s.cfg.Language,
		"rtl":      s.cfg.RTL(),
	})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetExercises(r.Context()))
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string          `json:"name"`
		Category    models.Category `json:"category"`
		MuscleGroup string          `json:"muscleGroup"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryStrength
	}
	if !req.Category.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	e := models.Exercise{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		MuscleGroup: req.MuscleGroup,
		IsCustom:    true,
	}
	if err := s.store.AddCustomExercise(r.Context(), e); err != nil {
		s.log.Error("adding custom exercise", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.History())
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, ok := s.tracker.Workout(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteWorkout(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.log.Error("deleting workout", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="gymlog_export.csv"`)
	if err := export.WriteCSV(w, s.tracker.History()); err != nil {
		s.log.Error("exporting CSV", "error", err)
	}
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Weekly(s.tracker.History(), time.Now()))
}

func (s *Server) handleGetUserStats(w http.ResponseWriter, r *http.Request) {
	userStats := s.store.GetUserStats(r.Context())
	if userStats == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, userStats)
}

func (s *Server) handleUpdateUserStats(w http.ResponseWriter, r *http.Request) {
	var patch models.StatsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := s.store.UpdateUserStats(r.Context(), patch)
	if err != nil {
		s.log.Error("updating user stats", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// defaultProgressPoints is how many chart points the API returns unless
// the caller asks otherwise. Presentation choice, not an engine rule.
const defaultProgressPoints = 12

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	exerciseID := r.URL.Query().Get("exercise")
	if exerciseID == "" {
		writeError(w, http.StatusBadRequest, "exercise parameter required")
		return
	}

	metric := stats.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = stats.MetricMaxWeight
	}
	if !metric.Valid() {
		writeError(w, http.StatusBadRequest, "unknown metric")
		return
	}

	limit := defaultProgressPoints
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	series := stats.Progress(s.tracker.History(), exerciseID, metric, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"points":  series,
		"records": stats.Records(series),
	})
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid weight")
		return
	}

	bar := 20.0
	if v := r.URL.Query().Get("bar"); v != "" {
		bar, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid bar weight")
			return
		}
	}

	writeJSON(w, http.StatusOK, plates.Calculate(weight, bar))
}
