package models

// Category classifies an exercise in the catalog.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility:
		return true
	}
	return false
}

// Exercise is a catalog entry. Built-in entries ship with the binary and
// are immutable; custom entries are user-created, appended to their own
// collection and merged after the built-ins at read time.
type Exercise struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	MuscleGroup string   `json:"muscleGroup"`
	IsCustom    bool     `json:"isCustom"`
}
