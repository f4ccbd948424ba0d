package stats

import (
	"testing"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

var base = time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

// TestProgressMetrics verifies each metric's per-session reduction.
func TestProgressMetrics(t *testing.T) {
	sessions := []models.WorkoutSession{
		session(day(0), 60, log("1", set(80, 5), set(90, 3))),
		session(day(2), 60, log("1", set(85, 8))),
	}

	tests := []struct {
		metric Metric
		want   []float64
	}{
		{MetricMaxWeight, []float64{90, 85}},
		{MetricTotalVolume, []float64{80*5 + 90*3, 85 * 8}},
		{MetricBestSet, []float64{400, 680}},
	}
	for _, tc := range tests {
		got := Progress(sessions, "1", tc.metric, 0)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: %d points, want %d", tc.metric, len(got), len(tc.want))
		}
		for i, p := range got {
			if p.Value != tc.want[i] {
				t.Errorf("%s[%d] = %v, want %v", tc.metric, i, p.Value, tc.want[i])
			}
		}
	}
}

// TestProgressOrderAndLimit verifies ascending start-time order and that
// the limit keeps the most recent points.
func TestProgressOrderAndLimit(t *testing.T) {
	// Deliberately out of order: history is stored newest-first.
	sessions := []models.WorkoutSession{
		session(day(4), 60, log("1", set(100, 1))),
		session(day(0), 60, log("1", set(80, 1))),
		session(day(2), 60, log("1", set(90, 1))),
	}

	got := Progress(sessions, "1", MetricMaxWeight, 0)
	if len(got) != 3 || got[0].Value != 80 || got[1].Value != 90 || got[2].Value != 100 {
		t.Fatalf("series = %+v, want ascending 80,90,100", got)
	}

	limited := Progress(sessions, "1", MetricMaxWeight, 2)
	if len(limited) != 2 || limited[0].Value != 90 || limited[1].Value != 100 {
		t.Errorf("limited series = %+v, want the two most recent", limited)
	}
}

// TestProgressSkipsEmptyLogs verifies that a log with zero sets never
// appears as a 0-valued point — it would poison max-based series.
func TestProgressSkipsEmptyLogs(t *testing.T) {
	sessions := []models.WorkoutSession{
		session(day(0), 60, log("1", set(80, 5))),
		session(day(1), 60, log("1")), // exercise added, no sets logged
		session(day(2), 60, log("2", set(50, 10))),
	}

	got := Progress(sessions, "1", MetricMaxWeight, 0)
	if len(got) != 1 {
		t.Fatalf("series has %d points, want 1: %+v", len(got), got)
	}
	if got[0].Value != 80 {
		t.Errorf("value = %v, want 80", got[0].Value)
	}
}

// TestRecords verifies the personal-record summary math.
func TestRecords(t *testing.T) {
	series := []Point{{Value: 80}, {Value: 95}, {Value: 90}}

	r := Records(series)
	if r == nil {
		t.Fatal("Records returned nil for a non-empty series")
	}
	if r.Max != 95 || r.First != 80 || r.Latest != 90 {
		t.Errorf("summary = %+v", r)
	}
	if r.Improvement != 10 {
		t.Errorf("Improvement = %v, want 10", r.Improvement)
	}
	if r.ImprovementPct != 13 { // round(10/80*100)
		t.Errorf("ImprovementPct = %d, want 13", r.ImprovementPct)
	}
	if r.Sessions != 3 {
		t.Errorf("Sessions = %d, want 3", r.Sessions)
	}
}

// TestRecordsEdge verifies the empty-series and zero-first cases.
func TestRecordsEdge(t *testing.T) {
	if Records(nil) != nil {
		t.Error("Records(nil) != nil")
	}
	r := Records([]Point{{Value: 0}, {Value: 50}})
	if r.ImprovementPct != 0 {
		t.Errorf("ImprovementPct with zero first = %d, want 0", r.ImprovementPct)
	}
	if r.Improvement != 50 {
		t.Errorf("Improvement = %v, want 50", r.Improvement)
	}
}
