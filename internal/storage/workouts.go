package storage

import (
	"context"

	"github.com/meltforce/gymlog/internal/models"
)

// GetWorkouts returns the historical sessions. Read failures are logged
// and degrade to an empty list; stored order is not significant — the
// session tracker owns ordering.
func (s *Store) GetWorkouts(ctx context.Context) []models.WorkoutSession {
	var workouts []models.WorkoutSession
	if _, err := s.get(ctx, keyWorkouts, &workouts); err != nil {
		s.log.Error("loading workouts", "error", err)
		return []models.WorkoutSession{}
	}
	if workouts == nil {
		workouts = []models.WorkoutSession{}
	}
	return workouts
}

// SaveWorkout upserts one session into the historical collection:
// replaced in place when the id already exists, appended otherwise.
func (s *Store) SaveWorkout(ctx context.Context, w models.WorkoutSession) error {
	workouts := s.GetWorkouts(ctx)
	found := false
	for i := range workouts {
		if workouts[i].ID == w.ID {
			workouts[i] = w
			found = true
			break
		}
	}
	if !found {
		workouts = append(workouts, w)
	}
	return s.set(ctx, keyWorkouts, workouts)
}

// DeleteWorkout removes a session from history by id. Unknown ids are a
// no-op.
func (s *Store) DeleteWorkout(ctx context.Context, id string) error {
	workouts := s.GetWorkouts(ctx)
	kept := workouts[:0]
	for _, w := range workouts {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	return s.set(ctx, keyWorkouts, kept)
}

// SaveCurrentWorkout persists the active-session slot. A nil session
// clears the slot.
func (s *Store) SaveCurrentWorkout(ctx context.Context, w *models.WorkoutSession) error {
	if w == nil {
		return s.delete(ctx, keyCurrentWorkout)
	}
	return s.set(ctx, keyCurrentWorkout, w)
}

// GetCurrentWorkout returns the persisted active session, or nil when
// the slot is empty or unreadable.
func (s *Store) GetCurrentWorkout(ctx context.Context) *models.WorkoutSession {
	var w models.WorkoutSession
	ok, err := s.get(ctx, keyCurrentWorkout, &w)
	if err != nil {
		s.log.Error("loading current workout", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &w
}
