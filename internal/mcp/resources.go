package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/stats"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cutoff := time.Now().AddDate(0, 0, -14)

	type entry struct {
		Workout  models.WorkoutSession `json:"workout"`
		Duration int                   `json:"durationMinutes"`
		Sets     int                   `json:"totalSets"`
		Volume   float64               `json:"totalVolume"`
	}

	var recent []entry
	for _, w := range h.tracker.History() {
		if w.StartTime.Before(cutoff) {
			continue
		}
		recent = append(recent, entry{
			Workout:  w,
			Duration: stats.Duration(w),
			Sets:     stats.TotalSets(w),
			Volume:   stats.Volume(w),
		})
	}

	data, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
