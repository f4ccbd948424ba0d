// Package stats derives training statistics from completed workout
// sessions. Every function is pure: inputs are session values, outputs
// are fresh values, nothing is cached or persisted here.
package stats

import (
	"math"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

// Duration returns the session length in whole minutes, 0 for a session
// that was never finished.
func Duration(s models.WorkoutSession) int {
	if s.EndTime == nil {
		return 0
	}
	return int(math.Round(s.EndTime.Sub(s.StartTime).Minutes()))
}

// TotalSets counts the logged sets across all exercise logs.
func TotalSets(s models.WorkoutSession) int {
	n := 0
	for _, l := range s.Exercises {
		n += len(l.Sets)
	}
	return n
}

// Volume is the training-load proxy: weight times reps summed over
// every set in the session.
func Volume(s models.WorkoutSession) float64 {
	var v float64
	for _, l := range s.Exercises {
		for _, set := range l.Sets {
			v += set.Weight * float64(set.Reps)
		}
	}
	return v
}

// WeekStart returns Monday 00:00 of t's ISO week, in t's location.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -daysSinceMonday)
}

// WeeklySummary aggregates the current week's training.
type WeeklySummary struct {
	Sessions int     `json:"sessions"`
	Sets     int     `json:"sets"`
	Minutes  int     `json:"minutes"`
	Volume   float64 `json:"volume"`
}

// Weekly sums the per-session stats over sessions whose StartTime falls
// inside the ISO week containing now. A session starting exactly at
// Monday 00:00 is included; one starting a millisecond before is not.
func Weekly(sessions []models.WorkoutSession, now time.Time) WeeklySummary {
	start := WeekStart(now)
	end := start.AddDate(0, 0, 7)

	var sum WeeklySummary
	for _, s := range sessions {
		if s.StartTime.Before(start) || !s.StartTime.Before(end) {
			continue
		}
		sum.Sessions++
		sum.Sets += TotalSets(s)
		sum.Minutes += Duration(s)
		sum.Volume += Volume(s)
	}
	return sum
}
