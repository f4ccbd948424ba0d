package storage

import (
	"context"

	"github.com/meltforce/gymlog/internal/catalog"
	"github.com/meltforce/gymlog/internal/models"
)

// GetExercises returns the full catalog: built-ins first, then custom
// entries in creation order. Read failures degrade to built-ins only.
func (s *Store) GetExercises(ctx context.Context) []models.Exercise {
	return catalog.Merge(s.CustomExercises(ctx))
}

// CustomExercises returns only the user-created entries.
func (s *Store) CustomExercises(ctx context.Context) []models.Exercise {
	var custom []models.Exercise
	if _, err := s.get(ctx, keyCustomExercises, &custom); err != nil {
		s.log.Error("loading custom exercises", "error", err)
		return nil
	}
	return custom
}

// AddCustomExercise appends a user-created exercise to the custom
// collection. IsCustom is forced regardless of the input.
func (s *Store) AddCustomExercise(ctx context.Context, e models.Exercise) error {
	e.IsCustom = true
	custom := append(s.CustomExercises(ctx), e)
	return s.set(ctx, keyCustomExercises, custom)
}
