package stats

import (
	"math"
	"sort"

	"github.com/meltforce/gymlog/internal/models"
)

// Metric selects how a session's performance on one exercise is reduced
// to a single chart value.
type Metric string

const (
	// MetricMaxWeight is the heaviest single set of the session.
	MetricMaxWeight Metric = "maxWeight"
	// MetricTotalVolume is weight*reps summed over the session's sets.
	MetricTotalVolume Metric = "totalVolume"
	// MetricBestSet is the highest weight*reps of any single set.
	MetricBestSet Metric = "bestSet"
)

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricMaxWeight, MetricTotalVolume, MetricBestSet:
		return true
	}
	return false
}

// Point is one session's value in a progress series.
type Point struct {
	Time  int64   `json:"time"` // unix seconds of the session start
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Progress builds the per-session series for one exercise, ascending by
// start time. Sessions without a log for the exercise, and logs with
// zero sets, contribute nothing — a 0-valued point would corrupt the
// max-based metrics. When limit > 0 only the most recent limit points
// are kept; truncation is the caller's presentation choice, not the
// engine's.
func Progress(sessions []models.WorkoutSession, exerciseID string, metric Metric, limit int) []Point {
	type entry struct {
		session models.WorkoutSession
		log     models.ExerciseLog
	}

	var entries []entry
	for _, s := range sessions {
		for _, l := range s.Exercises {
			if l.ExerciseID == exerciseID && len(l.Sets) > 0 {
				entries = append(entries, entry{s, l})
				break
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].session.StartTime.Before(entries[j].session.StartTime)
	})

	points := make([]Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, Point{
			Time:  e.session.StartTime.Unix(),
			Label: e.session.StartTime.Format("01/02"),
			Value: reduce(e.log, metric),
		})
	}

	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return points
}

func reduce(l models.ExerciseLog, metric Metric) float64 {
	var v float64
	for _, s := range l.Sets {
		switch metric {
		case MetricTotalVolume:
			v += s.Weight * float64(s.Reps)
		case MetricBestSet:
			v = math.Max(v, s.Weight*float64(s.Reps))
		default: // MetricMaxWeight
			v = math.Max(v, s.Weight)
		}
	}
	return v
}

// RecordSummary describes the personal-record trajectory of a progress
// series.
type RecordSummary struct {
	Max            float64 `json:"max"`
	Latest         float64 `json:"latest"`
	First          float64 `json:"first"`
	Improvement    float64 `json:"improvement"`
	ImprovementPct int     `json:"improvementPct"`
	Sessions       int     `json:"sessions"`
}

// Records reduces a progress series to its personal-record summary.
// Returns nil for an empty series; callers must check.
func Records(series []Point) *RecordSummary {
	if len(series) == 0 {
		return nil
	}

	r := &RecordSummary{
		First:    series[0].Value,
		Latest:   series[len(series)-1].Value,
		Sessions: len(series),
	}
	for _, p := range series {
		r.Max = math.Max(r.Max, p.Value)
	}
	r.Improvement = r.Latest - r.First
	if r.First > 0 {
		r.ImprovementPct = int(math.Round(r.Improvement / r.First * 100))
	}
	return r
}
