package zone

import (
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/recurrence"
)

// Refresh brings a zone's task instances in line with today. The checks run
// in a fixed order:
//
//  1. a new day regenerates (or clears, when not due) and moves ActiveDate;
//  2. uninitialized tasks on the same day get the same treatment;
//  3. a zone that is no longer due today is cleared;
//  4. otherwise the current instances and their statuses are kept.
//
// The input zone is not modified.
func Refresh(z model.Zone, today time.Time, ids idgen.Generator) model.Zone {
	z = z.Clone()
	due := recurrence.ShouldGenerate(z.Cadence, today)
	day := model.DateKey(today)

	switch {
	case z.ActiveDate != day:
		z.ActiveDate = day
		z.Tasks = scheduled(z, due, ids)
	case z.Tasks == nil:
		z.Tasks = scheduled(z, due, ids)
	case !due:
		z.Tasks = []model.TaskInstance{}
	}
	return z
}

// RefreshAll refreshes every zone and returns the new collection.
func RefreshAll(zones []model.Zone, today time.Time, ids idgen.Generator) []model.Zone {
	out := make([]model.Zone, len(zones))
	for i, z := range zones {
		out[i] = Refresh(z, today, ids)
	}
	return out
}

func scheduled(z model.Zone, due bool, ids idgen.Generator) []model.TaskInstance {
	if !due {
		return []model.TaskInstance{}
	}
	return Generate(z.TaskTemplates, ids)
}
