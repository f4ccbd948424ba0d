package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/gymlog/internal/config"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/storage"
)

// newTestServer wires a full server against a temp sqlite store.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.Open(t.TempDir(), log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	tracker := session.New(store, log)
	tracker.Resume(t.Context())

	cfg := &config.Config{Language: "en"}
	cfg.Server.Port = 8420
	cfg.Storage.Dir = t.TempDir()
	return New(tracker, store, cfg, log)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) models.WorkoutSession {
	t.Helper()
	var w models.WorkoutSession
	if err := json.NewDecoder(rec.Body).Decode(&w); err != nil {
		t.Fatalf("decode error: %v (body %q)", err, rec.Body.String())
	}
	return w
}

// TestSessionLifecycle drives a full workout through the HTTP surface:
// start, add exercise, log set, finish, and verifies history afterwards.
func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	if rec := do(t, s, http.MethodGet, "/api/v1/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("GET session before start = %d, want 204", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/session", `{"name":"Push Day"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start = %d: %s", rec.Code, rec.Body.String())
	}
	started := decodeSession(t, rec)
	if started.Name != "Push Day" || started.EndTime != nil {
		t.Errorf("started session = %+v", started)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add exercise = %d: %s", rec.Code, rec.Body.String())
	}
	withExercise := decodeSession(t, rec)
	if len(withExercise.Exercises) != 1 || withExercise.Exercises[0].ExerciseName != "Barbell Bench Press" {
		t.Fatalf("exercises = %+v", withExercise.Exercises)
	}
	logID := withExercise.Exercises[0].ID

	rec = do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets",
		`{"weight":80,"reps":5,"rpe":8}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("log set = %d: %s", rec.Code, rec.Body.String())
	}
	withSet := decodeSession(t, rec)
	set := withSet.Exercises[0].Sets[0]
	if set.Weight != 80 || set.Reps != 5 || !set.Completed || set.Type != models.SetNormal {
		t.Errorf("set = %+v", set)
	}
	if set.RPE == nil || *set.RPE != 8 {
		t.Errorf("rpe = %v", set.RPE)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/session/finish", `{"notes":"good one"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("finish = %d: %s", rec.Code, rec.Body.String())
	}
	done := decodeSession(t, rec)
	if done.EndTime == nil || done.Notes != "good one" {
		t.Errorf("finished = %+v", done)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/session", ""); rec.Code != http.StatusNoContent {
		t.Errorf("GET session after finish = %d, want 204", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/workouts", "")
	var history []models.WorkoutSession
	if err := json.NewDecoder(rec.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != done.ID {
		t.Errorf("history = %+v", history)
	}
}

// TestSessionErrors verifies the error mapping: validation → 400,
// missing session / empty workout → 409.
func TestSessionErrors(t *testing.T) {
	s := newTestServer(t)

	if rec := do(t, s, http.MethodPost, "/api/v1/session/finish", ""); rec.Code != http.StatusConflict {
		t.Errorf("finish without session = %d, want 409", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/v1/session", "")
	if rec := do(t, s, http.MethodPost, "/api/v1/session/finish", ""); rec.Code != http.StatusConflict {
		t.Errorf("finish empty workout = %d, want 409", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	logID := decodeSession(t, rec).Exercises[0].ID

	rec = do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets",
		`{"weight":-5,"reps":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative weight = %d, want 400", rec.Code)
	}
	rec = do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets",
		`{"weight":50,"reps":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero reps = %d, want 400", rec.Code)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"no-such"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown exercise = %d, want 400", rec.Code)
	}
}

// TestCancelSession verifies that cancel discards progress and returns
// 204.
func TestCancelSession(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/v1/session", "")
	do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"4"}`)

	if rec := do(t, s, http.MethodDelete, "/api/v1/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("cancel = %d", rec.Code)
	}
	var history []models.WorkoutSession
	rec := do(t, s, http.MethodGet, "/api/v1/workouts", "")
	if err := json.NewDecoder(rec.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("cancel wrote history: %+v", history)
	}
}

// TestExercisesEndpoint verifies catalog listing and custom creation.
func TestExercisesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/exercises", "")
	var list []models.Exercise
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	builtinCount := len(list)
	if builtinCount == 0 {
		t.Fatal("no built-in exercises")
	}

	rec = do(t, s, http.MethodPost, "/api/v1/exercises",
		`{"name":"Hack Squat","category":"strength","muscleGroup":"Legs"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create custom = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/v1/exercises", "")
	list = nil
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != builtinCount+1 {
		t.Errorf("exercise count = %d, want %d", len(list), builtinCount+1)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/exercises", `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty name = %d, want 400", rec.Code)
	}
}

// TestPlatesEndpoint verifies the calculator query surface.
func TestPlatesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/plates?weight=100&bar=20", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("plates = %d", rec.Code)
	}
	var res struct {
		PerSide float64 `json:"perSide"`
		Exact   bool    `json:"exact"`
		Plates  []struct {
			Plate float64 `json:"plate"`
			Count int     `json:"count"`
		} `json:"plates"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.PerSide != 40 || !res.Exact || len(res.Plates) != 2 {
		t.Errorf("result = %+v", res)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/plates?weight=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid weight = %d, want 400", rec.Code)
	}
}

// TestProgressEndpoint verifies parameter validation and the combined
// series+records payload.
func TestProgressEndpoint(t *testing.T) {
	s := newTestServer(t)

	if rec := do(t, s, http.MethodGet, "/api/v1/progress", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing exercise = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/progress?exercise=1&metric=nope", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad metric = %d, want 400", rec.Code)
	}

	// Log one workout so the series has a point.
	do(t, s, http.MethodPost, "/api/v1/session", "")
	rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	logID := decodeSession(t, rec).Exercises[0].ID
	do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets", `{"weight":80,"reps":5}`)
	do(t, s, http.MethodPost, "/api/v1/session/finish", "")

	rec = do(t, s, http.MethodGet, "/api/v1/progress?exercise=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress = %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Points []struct {
			Value float64 `json:"value"`
		} `json:"points"`
		Records *struct {
			Max      float64 `json:"max"`
			Sessions int     `json:"sessions"`
		} `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 1 || res.Points[0].Value != 80 {
		t.Errorf("points = %+v", res.Points)
	}
	if res.Records == nil || res.Records.Max != 80 || res.Records.Sessions != 1 {
		t.Errorf("records = %+v", res.Records)
	}
}

// TestExportEndpoint verifies the CSV download headers and shape.
func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodPost, "/api/v1/session", `{"name":"Push Day"}`)
	rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	logID := decodeSession(t, rec).Exercises[0].ID
	do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets", `{"weight":80,"reps":5}`)
	do(t, s, http.MethodPost, "/api/v1/session/finish", "")

	rec = do(t, s, http.MethodGet, "/api/v1/workouts/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content-type = %q", ct)
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("export lines = %d:\n%s", len(lines), rec.Body.String())
	}
	if !strings.Contains(lines[1], `"Barbell Bench Press",1,80,5,400`) {
		t.Errorf("row = %q", lines[1])
	}
}

// TestUserStatsEndpoint verifies the merge-update round trip.
func TestUserStatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	if rec := do(t, s, http.MethodGet, "/api/v1/stats/user", ""); rec.Code != http.StatusNoContent {
		t.Errorf("stats before update = %d, want 204", rec.Code)
	}

	rec := do(t, s, http.MethodPut, "/api/v1/stats/user", `{"weight":82,"bodyFat":18}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPut, "/api/v1/stats/user", `{"weight":81.5}`)
	var got models.UserStats
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Weight != 81.5 || got.BodyFat == nil || *got.BodyFat != 18 {
		t.Errorf("merged stats = %+v", got)
	}
}

// TestWorkoutLookup verifies 404 mapping and delete.
func TestWorkoutLookup(t *testing.T) {
	s := newTestServer(t)

	if rec := do(t, s, http.MethodGet, "/api/v1/workouts/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown workout = %d, want 404", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/v1/session", "")
	rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	logID := decodeSession(t, rec).Exercises[0].ID
	do(t, s, http.MethodPost, "/api/v1/session/exercises/"+logID+"/sets", `{"weight":60,"reps":5}`)
	done := decodeSession(t, do(t, s, http.MethodPost, "/api/v1/session/finish", ""))

	if rec := do(t, s, http.MethodGet, "/api/v1/workouts/"+done.ID, ""); rec.Code != http.StatusOK {
		t.Errorf("lookup = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/workouts/"+done.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/workouts/"+done.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("lookup after delete = %d, want 404", rec.Code)
	}
}

// TestHealthz verifies the health payload carries the language config.
func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["language"] != "en" {
		t.Errorf("healthz body = %+v", body)
	}
}

// TestChunkedRequestBody verifies start/finish bodies are honored when
// the request carries no Content-Length (chunked transfer sets it to -1).
func TestChunkedRequestBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{"name":"Leg Day"}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("chunked start = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeSession(t, rec).Name; got != "Leg Day" {
		t.Errorf("name = %q, want %q", got, "Leg Day")
	}

	do(t, s, http.MethodPost, "/api/v1/session/exercises", `{"exerciseId":"1"}`)
	started := decodeSession(t, do(t, s, http.MethodGet, "/api/v1/session", ""))
	do(t, s, http.MethodPost, "/api/v1/session/exercises/"+started.Exercises[0].ID+"/sets", `{"weight":100,"reps":3}`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/session/finish", strings.NewReader(`{"notes":"heavy"}`))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("chunked finish = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeSession(t, rec).Notes; got != "heavy" {
		t.Errorf("notes = %q, want %q", got, "heavy")
	}
}
