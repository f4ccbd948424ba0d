// Package export renders workout history as CSV. The format is a
// stable external artifact: other tools consume it, so the header and
// quoting are fixed rather than delegated to encoding/csv's
// quote-when-needed rules.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meltforce/gymlog/internal/models"
)

// Header is the fixed CSV header row.
const Header = "Date,Time,Workout Name,Exercise,Set #,Weight (kg),Reps,Volume (kg),Notes"

// WriteCSV writes one row per set: session iteration order, then
// exercise-log order, then set order — no re-sorting. Name, exercise
// and notes columns are always quoted; session-level notes repeat on
// every row of the session.
func WriteCSV(w io.Writer, sessions []models.WorkoutSession) error {
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range sessions {
		date := s.StartTime.Format("2006-01-02")
		clock := s.StartTime.Format("15:04")
		for _, l := range s.Exercises {
			for i, set := range l.Sets {
				volume := set.Weight * float64(set.Reps)
				row := fmt.Sprintf("%s,%s,%s,%s,%d,%s,%d,%s,%s\n",
					date, clock,
					quote(s.Name), quote(l.ExerciseName),
					i+1,
					formatWeight(set.Weight), set.Reps, formatWeight(volume),
					quote(s.Notes))
				if _, err := io.WriteString(w, row); err != nil {
					return fmt.Errorf("writing row: %w", err)
				}
			}
		}
	}
	return nil
}

// quote wraps v in double quotes, doubling any embedded quotes.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// formatWeight renders a weight without trailing zeros (80, 82.5).
func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
