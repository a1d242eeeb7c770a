// Package tier maps cumulative point totals to achievement tiers.
package tier

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrEmptyLadder         = errors.New("tier ladder is empty")
	ErrFirstTierNotZero    = errors.New("first tier must start at 0 points")
	ErrThresholdsNotRising = errors.New("tier thresholds must be strictly increasing")
)

type Tier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MinimumPoints int    `json:"minimumPoints"`
	Color         string `json:"color"`
	Accent        string `json:"accent"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
}

// Ladder is an ordered set of tiers, ascending by MinimumPoints.
type Ladder []Tier

// Default is the built-in ladder.
var Default = Ladder{
	{ID: "rookie", Name: "Rookie", MinimumPoints: 0, Color: "#60a5fa", Accent: "#38bdf8", Icon: "🎒",
		Description: "Just setting out. Earn 0+ points to join the journey."},
	{ID: "trailblazer", Name: "Trailblazer", MinimumPoints: 250, Color: "#34d399", Accent: "#10b981", Icon: "🧭",
		Description: "Tasks are falling like dominoes. Reach 250 points."},
	{ID: "vanguard", Name: "Vanguard", MinimumPoints: 500, Color: "#fbbf24", Accent: "#f59e0b", Icon: "🛡️",
		Description: "Holding the front lines at 500 points."},
	{ID: "legend", Name: "Legend", MinimumPoints: 800, Color: "#fb7185", Accent: "#f43f5e", Icon: "🐉",
		Description: "Legends thrive above 800 points."},
	{ID: "mythic", Name: "Mythic", MinimumPoints: 1100, Color: "#c084fc", Accent: "#a855f7", Icon: "👑",
		Description: "Mythic heroes command 1100+ points."},
}

// NewLadder checks the ladder invariants.
func NewLadder(tiers []Tier) (Ladder, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyLadder
	}
	if tiers[0].MinimumPoints != 0 {
		return nil, ErrFirstTierNotZero
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinimumPoints <= tiers[i-1].MinimumPoints {
			return nil, fmt.Errorf("%w: %q (%d) after %q (%d)", ErrThresholdsNotRising,
				tiers[i].ID, tiers[i].MinimumPoints, tiers[i-1].ID, tiers[i-1].MinimumPoints)
		}
	}
	return Ladder(append([]Tier(nil), tiers...)), nil
}

// Index returns the position of the highest tier whose minimum is met.
// The lowest tier is the fallback, so negative totals land on it.
func (l Ladder) Index(total float64) int {
	idx := 0
	for i, t := range l {
		if total >= float64(t.MinimumPoints) {
			idx = i
		}
	}
	return idx
}

func (l Ladder) TierFor(total float64) Tier {
	return l[l.Index(total)]
}

// Next returns the tier above the one total maps to, if any.
func (l Ladder) Next(total float64) (Tier, bool) {
	i := l.Index(total) + 1
	if i >= len(l) {
		return Tier{}, false
	}
	return l[i], true
}

// PointsToNext returns how many points are missing to reach the next tier.
// ok is false at the top tier.
func (l Ladder) PointsToNext(total float64) (points float64, ok bool) {
	next, ok := l.Next(total)
	if !ok {
		return 0, false
	}
	return float64(next.MinimumPoints) - total, true
}

func (l Ladder) MaxThreshold() int {
	return l[len(l)-1].MinimumPoints
}

// ProgressFraction is total / MaxThreshold clamped to [0, 1].
func (l Ladder) ProgressFraction(total float64) float64 {
	max := l.MaxThreshold()
	if max <= 0 {
		return 0
	}
	return clamp(total/float64(max), 0, 1)
}

// RangeLabel renders the point range of tier i, e.g. "250 → 500" or
// "1,100+", with numbers formatted for p.
func (l Ladder) RangeLabel(i int, p *message.Printer) string {
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	if i+1 < len(l) {
		return p.Sprintf("%d → %d", l[i].MinimumPoints, l[i+1].MinimumPoints)
	}
	return p.Sprintf("%d+", l[i].MinimumPoints)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
