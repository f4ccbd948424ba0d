package storage

import (
	"context"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

// GetUserStats returns the body-metrics record, or nil when none has
// been saved yet (or the slot is unreadable).
func (s *Store) GetUserStats(ctx context.Context) *models.UserStats {
	var stats models.UserStats
	ok, err := s.get(ctx, keyUserStats, &stats)
	if err != nil {
		s.log.Error("loading user stats", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &stats
}

// UpdateUserStats merges the patch into the existing record (zero
// record when none exists), stamps LastUpdated, persists and returns
// the result.
func (s *Store) UpdateUserStats(ctx context.Context, p models.StatsPatch) (models.UserStats, error) {
	cur := models.UserStats{}
	if existing := s.GetUserStats(ctx); existing != nil {
		cur = *existing
	}
	next := cur.Apply(p, time.Now())
	if err := s.set(ctx, keyUserStats, next); err != nil {
		return models.UserStats{}, err
	}
	return next, nil
}
