package models

import "time"

// UserStats is the singleton body-metrics record.
type UserStats struct {
	Weight      float64   `json:"weight"`
	BodyFat     *float64  `json:"bodyFat,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StatsPatch is a sparse update for UserStats.
type StatsPatch struct {
	Weight  *float64 `json:"weight,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

// Apply returns a copy of s with the non-nil patch fields overwritten
// and LastUpdated refreshed to now. Missing fields are preserved.
func (s UserStats) Apply(p StatsPatch, now time.Time) UserStats {
	if p.Weight != nil {
		s.Weight = *p.Weight
	}
	if p.BodyFat != nil {
		bf := *p.BodyFat
		s.BodyFat = &bf
	}
	if p.Height != nil {
		h := *p.Height
		s.Height = &h
	}
	s.LastUpdated = now
	return s
}
