// Package catalog holds the built-in exercise definitions and the merge
// rule for user-created custom exercises.
package catalog

import "github.com/meltforce/gymlog/internal/models"

// builtins ship with the binary and are immutable. IDs are stable
// small integers so history recorded against them never moves.
var builtins = []models.Exercise{
	// Chest
	{ID: "1", Name: "Barbell Bench Press", Category: models.CategoryStrength, MuscleGroup: "Chest"},
	{ID: "2", Name: "Incline Dumbbell Press", Category: models.CategoryStrength, MuscleGroup: "Chest"},
	{ID: "3", Name: "Cable Crossovers", Category: models.CategoryStrength, MuscleGroup: "Chest"},
	// Back
	{ID: "4", Name: "Deadlift", Category: models.CategoryStrength, MuscleGroup: "Back"},
	{ID: "5", Name: "Pull Ups", Category: models.CategoryStrength, MuscleGroup: "Back"},
	{ID: "6", Name: "Bent Over Rows", Category: models.CategoryStrength, MuscleGroup: "Back"},
	// Legs
	{ID: "7", Name: "Barbell Squat", Category: models.CategoryStrength, MuscleGroup: "Legs"},
	{ID: "8", Name: "Leg Press", Category: models.CategoryStrength, MuscleGroup: "Legs"},
	{ID: "9", Name: "Lunges", Category: models.CategoryStrength, MuscleGroup: "Legs"},
	// Shoulders
	{ID: "10", Name: "Overhead Press", Category: models.CategoryStrength, MuscleGroup: "Shoulders"},
	{ID: "11", Name: "Lateral Raise", Category: models.CategoryStrength, MuscleGroup: "Shoulders"},
	// Arms
	{ID: "12", Name: "Barbell Curl", Category: models.CategoryStrength, MuscleGroup: "Biceps"},
	{ID: "13", Name: "Tricep Pushdown", Category: models.CategoryStrength, MuscleGroup: "Triceps"},
	// Cardio
	{ID: "14", Name: "Treadmill Run", Category: models.CategoryCardio, MuscleGroup: "Full Body"},
	{ID: "15", Name: "Rowing Machine", Category: models.CategoryCardio, MuscleGroup: "Full Body"},
}

// Builtins returns a copy of the built-in exercise list.
func Builtins() []models.Exercise {
	out := make([]models.Exercise, len(builtins))
	copy(out, builtins)
	return out
}

// Merge concatenates the built-ins with the given custom entries,
// built-ins first. Entries are not deduplicated by name; custom IDs are
// UUIDs so collisions with built-in IDs cannot occur.
func Merge(custom []models.Exercise) []models.Exercise {
	out := make([]models.Exercise, 0, len(builtins)+len(custom))
	out = append(out, builtins...)
	out = append(out, custom...)
	return out
}

// Find returns the exercise with the given id from the merged list, or
// false when no such entry exists.
func Find(custom []models.Exercise, id string) (models.Exercise, bool) {
	for _, e := range Merge(custom) {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exercise{}, false
}
