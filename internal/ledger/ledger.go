// Package ledger keeps the append-only score history.
package ledger

import (
	"slices"
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/scoring"
)

// CloseDay snapshots the score of every zone. It returns ok == false when
// there are no zones, in which case nothing should be recorded.
func CloseDay(zones []model.Zone, now time.Time, ids idgen.Generator) (entry model.ScoreEntry, ok bool) {
	if len(zones) == 0 {
		return model.ScoreEntry{}, false
	}
	results := scoring.Results(zones)
	total := 0.0
	for _, r := range results {
		total += r.Score
	}
	return model.ScoreEntry{
		ID:         ids.NewID("score"),
		Timestamp:  now,
		TotalScore: total,
		Zones:      results,
	}, true
}

// Ledger is an append-only list of score entries. Entries go in and come out
// as copies, so nothing outside can change a recorded entry.
type Ledger struct {
	entries []model.ScoreEntry
}

// New wraps previously recorded entries.
func New(entries []model.ScoreEntry) *Ledger {
	l := &Ledger{entries: make([]model.ScoreEntry, 0, len(entries))}
	for _, e := range entries {
		l.entries = append(l.entries, e.Clone())
	}
	return l
}

func (l *Ledger) Append(e model.ScoreEntry) {
	l.entries = append(l.entries, e.Clone())
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns the history in insertion order.
func (l *Ledger) Entries() []model.ScoreEntry {
	out := make([]model.ScoreEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Newest returns the history sorted by timestamp, most recent first.
func (l *Ledger) Newest() []model.ScoreEntry {
	out := l.Entries()
	slices.SortStableFunc(out, func(a, b model.ScoreEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
