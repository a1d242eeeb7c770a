package tier

import (
	"math"
	"sync"
	"time"
)

// TransitionDuration is how long the transition flag stays raised after the
// tier changes.
const TransitionDuration = 420 * time.Millisecond

// Update describes the tracker state after a change.
type Update struct {
	Total        float64  `json:"totalPoints"`
	Tier         Tier     `json:"level"`
	Next         *Tier    `json:"nextLevel,omitempty"`
	PointsToNext *float64 `json:"pointsToNext,omitempty"`
	Progress     float64  `json:"progress"`
	Source       string   `json:"source"`
	// Transition is true when this update moved the total into another tier.
	Transition bool `json:"transition"`
}

// Tracker keeps a running total and flags tier changes. The flag resets by
// itself after the configured duration.
type Tracker struct {
	mu            sync.Mutex
	ladder        Ladder
	duration      time.Duration
	total         int
	current       Tier
	transitioning bool
	timer         *time.Timer
	generation    int
}

func NewTracker(l Ladder) *Tracker {
	return &Tracker{
		ladder:   l,
		duration: TransitionDuration,
		current:  l[0],
	}
}

// SetTransitionDuration changes how long the transition flag stays raised.
func (t *Tracker) SetTransitionDuration(d time.Duration) {
	t.mu.Lock()
	t.duration = d
	t.mu.Unlock()
}

// SetTotal replaces the total. Negative values are stored as 0 and
// fractions are rounded.
func (t *Tracker) SetTotal(value float64, source string) Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setLocked(value, source)
}

// AddPoints adds delta to the current total.
func (t *Tracker) AddPoints(delta float64, source string) Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setLocked(float64(t.total)+delta, source)
}

func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *Tracker) Current() Tier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Transitioning reports whether a tier change happened within the last
// transition duration.
func (t *Tracker) Transitioning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transitioning
}

func (t *Tracker) setLocked(value float64, source string) Update {
	if math.IsNaN(value) || value < 0 {
		value = 0
	}
	t.total = int(math.Round(value))

	u := t.ladder.Standing(float64(t.total))
	u.Source = source
	u.Transition = u.Tier.ID != t.current.ID
	t.current = u.Tier
	if u.Transition {
		t.raiseLocked()
	}
	return u
}

// Standing describes where total sits on the ladder. Source and Transition
// are left empty.
func (l Ladder) Standing(total float64) Update {
	u := Update{
		Total:    total,
		Tier:     l.TierFor(total),
		Progress: l.ProgressFraction(total),
	}
	if n, ok := l.Next(total); ok {
		pts := float64(n.MinimumPoints) - total
		u.Next = &n
		u.PointsToNext = &pts
	}
	return u
}

func (t *Tracker) raiseLocked() {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.transitioning = true
	t.generation++
	gen := t.generation
	t.timer = time.AfterFunc(t.duration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.generation == gen {
			t.transitioning = false
		}
	})
}
