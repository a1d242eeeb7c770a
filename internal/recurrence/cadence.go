package recurrence

import (
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/zonetasks/internal/model"
)

// ShouldGenerate reports whether a zone with cadence c has tasks on date.
// Daily cadences match every date. Weekly cadences match when the weekday of
// date is in the set; an empty set matches nothing.
func ShouldGenerate(c model.Cadence, date time.Time) bool {
	if c.Type != model.CadenceWeekly {
		return true
	}
	return slices.Contains(c.Days, date.Weekday())
}

// Describe returns a short label such as "Daily" or "Weekly: Mon, Wed".
func Describe(c model.Cadence) string {
	if c.Type != model.CadenceWeekly {
		return "Daily"
	}
	if len(c.Days) == 0 {
		return "Weekly: no days"
	}
	days := slices.Clone(c.Days)
	slices.Sort(days)
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return "Weekly: " + strings.Join(names, ", ")
}
