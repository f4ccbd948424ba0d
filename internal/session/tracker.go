// Package session owns the single active workout session and provides
// the only sanctioned way to mutate it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/gymlog/internal/models"
)

var (
	// ErrNoActiveSession is returned when an operation that needs an
	// active session is invoked with none. Never a crash: callers treat
	// it as a declined operation.
	ErrNoActiveSession = errors.New("no active workout session")

	// ErrEmptyWorkout is returned by Finish for a session with no
	// exercises. Cancel is the path for discarding such a session.
	ErrEmptyWorkout = errors.New("workout has no exercises")

	// ErrInvalidSet is returned when set input fails validation. The
	// session state is untouched.
	ErrInvalidSet = errors.New("invalid set input")
)

// DefaultName is used when a session is started without a name.
const DefaultName = "New Workout"

// Gateway is the persistence surface the tracker needs. Reads degrade
// to empty values inside the implementation; writes report errors and
// the tracker decides which of them gate the caller.
type Gateway interface {
	GetWorkouts(ctx context.Context) []models.WorkoutSession
	SaveWorkout(ctx context.Context, w models.WorkoutSession) error
	DeleteWorkout(ctx context.Context, id string) error
	SaveCurrentWorkout(ctx context.Context, w *models.WorkoutSession) error
	GetCurrentWorkout(ctx context.Context) *models.WorkoutSession
}

// SetInput is the caller-facing shape for logging a new set.
type SetInput struct {
	Weight float64        `json:"weight"`
	Reps   int            `json:"reps"`
	Type   models.SetType `json:"type"`
	RPE    *int           `json:"rpe,omitempty"`
}

// Tracker maintains exactly one optional active session plus the
// history cache. All methods are safe for concurrent use; each mutation
// derives a whole new session value (copy-on-write) so previously
// returned snapshots are never written through.
type Tracker struct {
	store Gateway
	log   *slog.Logger

	mu      sync.Mutex
	current *models.WorkoutSession
	history []models.WorkoutSession // newest first
}

// New creates a Tracker. Call Resume before serving to reload persisted
// state.
func New(store Gateway, log *slog.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// Resume reloads history and any crashed-but-unfinished active session
// from the store. A finished session found in the active slot violates
// the state invariant and is discarded with a warning.
func (t *Tracker) Resume(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = t.store.GetWorkouts(ctx)
	sortNewestFirst(t.history)

	if w := t.store.GetCurrentWorkout(ctx); w != nil {
		if w.Finished() {
			t.log.Warn("finished session found in active slot, discarding", "id", w.ID)
			if err := t.store.SaveCurrentWorkout(ctx, nil); err != nil {
				t.log.Error("clearing active slot", "error", err)
			}
		} else {
			t.current = w
			t.log.Info("resumed active session", "id", w.ID, "name", w.Name)
		}
	}
}

// Active returns a snapshot of the active session, or nil.
func (t *Tracker) Active() *models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	c := t.current.Clone()
	return &c
}

// History returns the finished sessions, newest first. The returned
// slice is the caller's; the session values inside are never mutated
// after finish.
func (t *Tracker) History() []models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.WorkoutSession, len(t.history))
	copy(out, t.history)
	return out
}

// Workout looks up one finished session by id.
func (t *Tracker) Workout(id string) (models.WorkoutSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, w := range t.history {
		if w.ID == id {
			return w, true
		}
	}
	return models.WorkoutSession{}, false
}

// Start creates and activates a new session, persisting the active slot
// for crash recovery. If a session is already active it is returned
// unchanged (resume semantics).
func (t *Tracker) Start(ctx context.Context, name string) models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return t.current.Clone()
	}

	if name == "" {
		name = DefaultName
	}
	next := models.WorkoutSession{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: time.Now(),
		Exercises: []models.ExerciseLog{},
	}
	t.current = &next
	t.persistActive(ctx)
	return next.Clone()
}

// Finish stamps the end time, appends the session to history (newest
// first) and clears the active slot. The history write and the slot
// clear are awaited; the in-memory transition happens regardless, so a
// persistence failure leaves memory authoritative and is reported to
// the caller.
func (t *Tracker) Finish(ctx context.Context, notes string) (models.WorkoutSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return models.WorkoutSession{}, ErrNoActiveSession
	}
	if len(t.current.Exercises) == 0 {
		return models.WorkoutSession{}, ErrEmptyWorkout
	}

	done := t.current.Clone()
	now := time.Now()
	done.EndTime = &now
	if notes != "" {
		done.Notes = notes
	}

	t.history = append([]models.WorkoutSession{done}, t.history...)
	t.current = nil

	if err := t.store.SaveWorkout(ctx, done); err != nil {
		t.log.Error("saving finished workout", "id", done.ID, "error", err)
		return done, fmt.Errorf("saving workout: %w", err)
	}
	if err := t.store.SaveCurrentWorkout(ctx, nil); err != nil {
		t.log.Error("clearing active slot", "error", err)
		return done, fmt.Errorf("clearing active slot: %w", err)
	}
	return done, nil
}

// Cancel clears the active slot, discarding all progress. No history
// write. Cancelling with no active session is a no-op.
func (t *Tracker) Cancel(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil
	}
	t.current = nil
	if err := t.store.SaveCurrentWorkout(ctx, nil); err != nil {
		t.log.Error("clearing active slot", "error", err)
		return fmt.Errorf("clearing active slot: %w", err)
	}
	return nil
}

// DeleteWorkout removes a finished session from history. The store
// write is awaited. Unknown ids are a no-op.
func (t *Tracker) DeleteWorkout(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.history[:0]
	for _, w := range t.history {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	t.history = kept
	if err := t.store.DeleteWorkout(ctx, id); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// AddExercise appends a fresh exercise log to the active session. The
// exercise name is copied at this moment and never re-synced.
func (t *Tracker) AddExercise(ctx context.Context, e models.Exercise) (models.WorkoutSession, error) {
	return t.mutate(ctx, func(s *models.WorkoutSession) {
		s.Exercises = append(s.Exercises, models.ExerciseLog{
			ID:           uuid.NewString(),
			ExerciseID:   e.ID,
			ExerciseName: e.Name,
			Sets:         []models.Set{},
		})
	})
}

// RemoveExercise removes an exercise log (and all its sets) by id.
// Unknown ids are a silent no-op.
func (t *Tracker) RemoveExercise(ctx context.Context, logID string) (models.WorkoutSession, error) {
	return t.mutate(ctx, func(s *models.WorkoutSession) {
		kept := s.Exercises[:0]
		for _, l := range s.Exercises {
			if l.ID != logID {
				kept = append(kept, l)
			}
		}
		s.Exercises = kept
	})
}

// LogSet validates the input, constructs a completed Set with a fresh
// id and appends it to the matching exercise log. An unknown log id is
// a silent no-op (stale UI state is benign).
func (t *Tracker) LogSet(ctx context.Context, logID string, in SetInput) (models.WorkoutSession, error) {
	if err := validateSetInput(in); err != nil {
		return models.WorkoutSession{}, err
	}
	typ := in.Type
	if typ == "" {
		typ = models.SetNormal
	}

	return t.mutate(ctx, func(s *models.WorkoutSession) {
		for i := range s.Exercises {
			if s.Exercises[i].ID != logID {
				continue
			}
			newSet := models.Set{
				ID:        uuid.NewString(),
				Weight:    in.Weight,
				Reps:      in.Reps,
				Completed: true,
				Type:      typ,
			}
			if in.RPE != nil {
				rpe := *in.RPE
				newSet.RPE = &rpe
			}
			s.Exercises[i].Sets = append(s.Exercises[i].Sets, newSet)
			return
		}
	})
}

// UpdateSet merges the patch into the matching set. Other sets and logs
// are untouched; unknown ids are a silent no-op.
func (t *Tracker) UpdateSet(ctx context.Context, logID, setID string, p models.SetPatch) (models.WorkoutSession, error) {
	if err := validateSetPatch(p); err != nil {
		return models.WorkoutSession{}, err
	}

	return t.mutate(ctx, func(s *models.WorkoutSession) {
		for i := range s.Exercises {
			if s.Exercises[i].ID != logID {
				continue
			}
			for j, set := range s.Exercises[i].Sets {
				if set.ID == setID {
					s.Exercises[i].Sets[j] = set.Apply(p)
					return
				}
			}
			return
		}
	})
}

// DeleteSet removes the matching set by id. Unknown ids are a silent
// no-op.
func (t *Tracker) DeleteSet(ctx context.Context, logID, setID string) (models.WorkoutSession, error) {
	return t.mutate(ctx, func(s *models.WorkoutSession) {
		for i := range s.Exercises {
			if s.Exercises[i].ID != logID {
				continue
			}
			kept := s.Exercises[i].Sets[:0]
			for _, set := range s.Exercises[i].Sets {
				if set.ID != setID {
					kept = append(kept, set)
				}
			}
			s.Exercises[i].Sets = kept
			return
		}
	})
}

// mutate runs fn against a clone of the active session, swaps the clone
// in and persists the new snapshot best-effort. The pre-mutation value
// is never written through.
func (t *Tracker) mutate(ctx context.Context, fn func(*models.WorkoutSession)) (models.WorkoutSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return models.WorkoutSession{}, ErrNoActiveSession
	}

	next := t.current.Clone()
	fn(&next)
	t.current = &next
	t.persistActive(ctx)
	return next.Clone(), nil
}

// persistActive snapshots the active slot. Best-effort: a failed write
// is logged and the in-memory state stays authoritative until the next
// successful write. Callers hold t.mu.
func (t *Tracker) persistActive(ctx context.Context) {
	if err := t.store.SaveCurrentWorkout(ctx, t.current); err != nil {
		t.log.Error("saving active session snapshot", "error", err)
	}
}

func validateSetInput(in SetInput) error {
	if math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) || in.Weight < 0 {
		return fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidSet)
	}
	if in.Reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidSet)
	}
	if in.RPE != nil && (*in.RPE < 1 || *in.RPE > 10) {
		return fmt.Errorf("%w: rpe must be between 1 and 10", ErrInvalidSet)
	}
	if in.Type != "" && !in.Type.Valid() {
		return fmt.Errorf("%w: unknown set type %q", ErrInvalidSet, in.Type)
	}
	return nil
}

func validateSetPatch(p models.SetPatch) error {
	if p.Weight != nil && (math.IsNaN(*p.Weight) || math.IsInf(*p.Weight, 0) || *p.Weight < 0) {
		return fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidSet)
	}
	if p.Reps != nil && *p.Reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidSet)
	}
	if p.RPE != nil && (*p.RPE < 1 || *p.RPE > 10) {
		return fmt.Errorf("%w: rpe must be between 1 and 10", ErrInvalidSet)
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown set type %q", ErrInvalidSet, *p.Type)
	}
	return nil
}

func sortNewestFirst(sessions []models.WorkoutSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}
