package models

import "time"

// SetType records how a set was performed. It is kept on the record but
// no aggregate treats the types differently.
type SetType string

const (
	SetWarmup  SetType = "warmup"
	SetNormal  SetType = "normal"
	SetFailure SetType = "failure"
	SetDrop    SetType = "drop"
)

// Valid reports whether t is one of the known set types.
func (t SetType) Valid() bool {
	switch t {
	case SetWarmup, SetNormal, SetFailure, SetDrop:
		return true
	}
	return false
}

// Set is one logged repetition unit within an exercise log. Weight is
// non-negative and Reps positive; both are enforced at the mutation
// boundary before a Set is constructed. Ordering within a log is
// insertion order; the display index is the position, not a field.
type Set struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RPE       *int    `json:"rpe,omitempty"`
	Completed bool    `json:"completed"`
	Type      SetType `json:"type"`
}

// SetPatch is a sparse update for a Set. Nil fields are left untouched.
type SetPatch struct {
	Weight    *float64 `json:"weight,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	RPE       *int     `json:"rpe,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
	Type      *SetType `json:"type,omitempty"`
}

// Apply returns a copy of s with the non-nil patch fields overwritten.
func (s Set) Apply(p SetPatch) Set {
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	if p.Reps != nil {
		s.Reps = *p.Reps
	}
	if p.RPE != nil {
		rpe := *p.RPE
		s.RPE = &rpe
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	return s
}

// ExerciseLog is one exercise's activity within a single session.
// ExerciseName is copied from the catalog entry when the log is created
// and is deliberately never re-synced: a later catalog rename must not
// rewrite history.
type ExerciseLog struct {
	ID           string `json:"id"`
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Sets         []Set  `json:"sets"`
	Notes        string `json:"notes,omitempty"`
}

// Clone returns a deep copy of the log.
func (l ExerciseLog) Clone() ExerciseLog {
	out := l
	out.Sets = make([]Set, len(l.Sets))
	copy(out.Sets, l.Sets)
	for i, s := range l.Sets {
		if s.RPE != nil {
			rpe := *s.RPE
			out.Sets[i].RPE = &rpe
		}
	}
	return out
}

// WorkoutSession is the aggregate root: one workout occasion bounded by
// start and finish. A nil EndTime marks the session as still active; at
// most one such session exists at a time, held in the active slot.
type WorkoutSession struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    *time.Time    `json:"endTime,omitempty"`
	Exercises  []ExerciseLog `json:"exercises"`
	Notes      string        `json:"notes,omitempty"`
	BodyWeight *float64      `json:"bodyWeight,omitempty"`
}

// Finished reports whether the session has been finished into history.
func (w WorkoutSession) Finished() bool {
	return w.EndTime != nil
}

// Clone returns a deep copy of the session. Mutators operate on clones
// so previously handed-out values are never written through.
func (w WorkoutSession) Clone() WorkoutSession {
	out := w
	if w.EndTime != nil {
		end := *w.EndTime
		out.EndTime = &end
	}
	if w.BodyWeight != nil {
		bw := *w.BodyWeight
		out.BodyWeight = &bw
	}
	out.Exercises = make([]ExerciseLog, len(w.Exercises))
	for i, l := range w.Exercises {
		out.Exercises[i] = l.Clone()
	}
	return out
}
