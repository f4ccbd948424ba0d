// Package plates computes the per-side plate breakdown for loading a
// barbell to a target weight.
package plates

import "math"

// Denominations is the standard plate set in kg, largest first. The
// greedy walk below depends on this ordering.
var Denominations = []float64{25, 20, 15, 10, 5, 2.5, 1.25, 1, 0.5}

// PlateCount is one denomination and how many of it go on each side.
type PlateCount struct {
	Plate float64 `json:"plate"`
	Count int     `json:"count"`
}

// Result is a plate breakdown for one side of the bar.
type Result struct {
	PerSide float64      `json:"perSide"`
	Plates  []PlateCount `json:"plates"`
	Exact   bool         `json:"exact"`
}

// Calculate breaks totalWeight (bar included) into per-side plates using
// a greedy walk over Denominations. The remainder is rounded to two
// decimals after each denomination to neutralize floating-point drift.
//
// The walk is deterministic and denomination-priority-ordered, not
// guaranteed minimal in plate count. When the target cannot be built
// from the available denominations the breakdown is still returned with
// Exact set to false.
func Calculate(totalWeight, barWeight float64) Result {
	perSide := (totalWeight - barWeight) / 2
	if perSide <= 0 {
		// Bar-only. Exact iff the bar alone hits the target.
		return Result{Exact: math.Abs(totalWeight-barWeight) < 0.01}
	}

	res := Result{PerSide: perSide}
	remaining := perSide
	for _, plate := range Denominations {
		if remaining >= plate {
			count := int(math.Floor(remaining / plate))
			res.Plates = append(res.Plates, PlateCount{Plate: plate, Count: count})
			remaining -= float64(count) * plate
			remaining = math.Round(remaining*100) / 100
		}
	}

	loaded := barWeight
	for _, pc := range res.Plates {
		loaded += 2 * pc.Plate * float64(pc.Count)
	}
	res.Exact = math.Abs(loaded-totalWeight) < 0.01
	return res
}
