// Package scoring computes zone and global point totals from task outcomes.
//
// Totals are recomputed from the current instances every time they are
// needed. Zones hold a handful of tasks, so nothing is cached.
package scoring

import "github.com/dukerupert/zonetasks/internal/model"

// Breakdown computes the full result for one zone:
//
//	base    = completed * perTaskPoints
//	bonus   = completionBonus when every instance is completed (and there is one)
//	penalty = penalty * skipped, or * incomplete in incomplete mode
//	score   = base + bonus - penalty
//
// A zone without instances scores 0. Scores are neither floored nor rounded.
func Breakdown(z model.Zone) model.ZoneResult {
	r := model.ZoneResult{
		ZoneID:   z.ID,
		ZoneName: z.Name,
		Total:    len(z.Tasks),
	}
	if r.Total == 0 {
		return r
	}

	skipped := 0
	for _, t := range z.Tasks {
		switch t.Status {
		case model.StatusCompleted:
			r.Completed++
		case model.StatusSkipped:
			skipped++
		}
	}

	charged := skipped
	if z.PenaltyMode == model.PenaltyIncomplete {
		charged = r.Total - r.Completed
	}

	r.Base = float64(r.Completed) * float64(z.PerTaskPoints)
	if r.Completed > 0 && r.Completed == r.Total {
		r.Bonus = float64(z.CompletionBonus)
	}
	r.Penalty = float64(z.Penalty) * float64(charged)
	r.Score = r.Base + r.Bonus - r.Penalty
	return r
}

// ZoneScore returns the point total for one zone.
func ZoneScore(z model.Zone) float64 {
	return Breakdown(z).Score
}

// GlobalTotal sums ZoneScore over all zones.
func GlobalTotal(zones []model.Zone) float64 {
	total := 0.0
	for _, z := range zones {
		total += ZoneScore(z)
	}
	return total
}

// Results returns the breakdown of every zone, in zone order.
func Results(zones []model.Zone) []model.ZoneResult {
	results := make([]model.ZoneResult, len(zones))
	for i, z := range zones {
		results[i] = Breakdown(z)
	}
	return results
}
