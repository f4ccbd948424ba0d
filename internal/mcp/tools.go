package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/plates"
	"github.com/meltforce/gymlog/internal/stats"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query finished workouts. Returns sessions with their exercises and sets, newest first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter to sessions containing this exercise (partial name match, e.g. 'bench')")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Per-session progress series for one exercise, plus first/best records and improvement percentage."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise id or name (partial match, e.g. 'squat')")),
	mcp.WithString("metric", mcp.Description("Series metric. Defaults to 'maxWeight'."), mcp.Enum("maxWeight", "totalVolume", "bestSet")),
	mcp.WithNumber("limit", mcp.Description("Keep only the most recent N sessions. 0 means all. Defaults to 0.")),
)

var toolGetWeeklySummary = mcp.NewTool("get_weekly_summary",
	mcp.WithDescription("Totals for the current calendar week (Monday start): sessions, sets, minutes, and volume in kg."),
)

var toolCalculatePlates = mcp.NewTool("calculate_plates",
	mcp.WithDescription("Per-side barbell plate breakdown for a target weight. Returns plate denominations, counts, and whether the target is reachable exactly."),
	mcp.WithNumber("target", mcp.Required(), mcp.Description("Total target weight in kg, bar included")),
	mcp.WithNumber("bar", mcp.Description("Bar weight in kg. Defaults to 20.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog: built-in exercises plus user-defined custom ones."),
	mcp.WithString("category", mcp.Description("Filter by category"), mcp.Enum("strength", "cardio", "flexibility")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	filter := strings.ToLower(req.GetString("exercise", ""))

	// Always an array on the wire, even with no matches.
	out := []models.WorkoutSession{}
	for _, w := range h.tracker.History() {
		if w.StartTime.Before(start) || w.StartTime.After(end) {
			continue
		}
		if filter != "" && !sessionHasExercise(w, filter) {
			continue
		}
		out = append(out, w)
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	metric := stats.Metric(req.GetString("metric", string(stats.MetricMaxWeight)))
	if !metric.Valid() {
		return mcp.NewToolResultError("unknown metric: " + string(metric)), nil
	}
	limit := req.GetInt("limit", 0)

	history := h.tracker.History()
	id, name, ok := resolveExercise(history, h.store.GetExercises(ctx), query)
	if !ok {
		return mcp.NewToolResultError("no exercise matches " + query), nil
	}

	points := stats.Progress(history, id, metric, limit)
	payload := map[string]any{
		"exercise": map[string]string{"id": id, "name": name},
		"metric":   metric,
		"points":   points,
		"records":  stats.Records(points),
	}

	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := stats.Weekly(h.tracker.History(), time.Now())
	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) calculatePlates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("target")
	if err != nil {
		return mcp.NewToolResultError("target parameter is required"), nil
	}
	bar := req.GetFloat("bar", 20)

	result, err := mcp.NewToolResultJSON(plates.Calculate(target, bar))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	exercises := h.store.GetExercises(ctx)
	if category != "" {
		filtered := exercises[:0:0]
		for _, e := range exercises {
			if string(e.Category) == category {
				filtered = append(filtered, e)
			}
		}
		exercises = filtered
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// sessionHasExercise reports whether any log in w matches the lowercased
// name fragment.
func sessionHasExercise(w models.WorkoutSession, fragment string) bool {
	for _, l := range w.Exercises {
		if strings.Contains(strings.ToLower(l.ExerciseName), fragment) {
			return true
		}
	}
	return false
}

// resolveExercise maps a user-supplied id or name fragment to a concrete
// exercise id. Exact catalog ids win; otherwise the catalog and then the
// workout history are scanned for a partial name match, so progress works
// even for exercises logged before being removed from the catalog.
func resolveExercise(history []models.WorkoutSession, catalog []models.Exercise, query string) (id, name string, ok bool) {
	lower := strings.ToLower(query)
	for _, e := range catalog {
		if e.ID == query {
			return e.ID, e.Name, true
		}
	}
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return e.ID, e.Name, true
		}
	}
	for _, w := range history {
		for _, l := range w.Exercises {
			if l.ExerciseID == query || strings.Contains(strings.ToLower(l.ExerciseName), lower) {
				return l.ExerciseID, l.ExerciseName, true
			}
		}
	}
	return "", "", false
}
