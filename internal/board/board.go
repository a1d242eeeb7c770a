// Package board holds the single long-lived game state and runs every
// operation on it: refreshing zones, editing them, recording task status,
// scoring and closing the day.
package board

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/ledger"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/scoring"
	"github.com/dukerupert/zonetasks/internal/store"
	"github.com/dukerupert/zonetasks/internal/tier"
	"github.com/dukerupert/zonetasks/internal/zone"
)

var (
	ErrZoneNotFound = errors.New("zone not found")
	ErrTaskNotFound = errors.New("task not found")
)

// Clock returns the current instant.
type Clock func() time.Time

// Notifier receives a message after every change to the board.
type Notifier interface {
	Notify(entity, action, id string, extra map[string]any)
}

// Config wires a Board. Store and Logger are required; the rest default.
type Config struct {
	Store    store.KV
	IDs      idgen.Generator
	Clock    Clock
	Location *time.Location
	Ladder   tier.Ladder
	Notifier Notifier
	// OnCloseDay runs after a day has been recorded, outside the board lock.
	OnCloseDay func(model.State)
	Logger     *slog.Logger
}

// Score is the live breakdown of every zone plus the tier standing.
type Score struct {
	Zones    []model.ZoneResult `json:"zones"`
	Total    float64            `json:"total"`
	Progress tier.Update        `json:"progress"`
}

type Board struct {
	mu sync.Mutex

	kv         store.KV
	ids        idgen.Generator
	clock      Clock
	loc        *time.Location
	ladder     tier.Ladder
	tracker    *tier.Tracker
	notifier   Notifier
	onCloseDay func(model.State)
	logger     *slog.Logger

	player string
	zones  []model.Zone
	ledger *ledger.Ledger
}

func New(cfg Config) *Board {
	b := &Board{
		kv:         cfg.Store,
		ids:        cfg.IDs,
		clock:      cfg.Clock,
		loc:        cfg.Location,
		ladder:     cfg.Ladder,
		notifier:   cfg.Notifier,
		onCloseDay: cfg.OnCloseDay,
		logger:     cfg.Logger,
		zones:      []model.Zone{},
		ledger:     ledger.New(nil),
	}
	if b.ids == nil {
		b.ids = idgen.UUID{}
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.loc == nil {
		b.loc = time.Local
	}
	if len(b.ladder) == 0 {
		b.ladder = tier.Default
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.tracker = tier.NewTracker(b.ladder)
	return b
}

// Ladder returns the tier ladder the board scores against.
func (b *Board) Ladder() tier.Ladder {
	return b.ladder
}

// Tracker returns the running tier tracker.
func (b *Board) Tracker() *tier.Tracker {
	return b.tracker
}

// today is the current instant in the board's location, so that the date
// key and the weekday agree.
func (b *Board) today() time.Time {
	return b.clock().In(b.loc)
}

// Load imports a legacy task list if one is waiting, reads the persisted
// state, refreshes every zone for today and writes the result back.
func (b *Board) Load() model.State {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.today()
	if imported, err := store.MigrateLegacy(b.kv, today, b.ids, b.logger); err != nil {
		b.logger.Error("legacy import", "error", err)
	} else if imported {
		b.logger.Info("legacy task list migrated")
	}

	state := store.LoadState(b.kv, b.logger)
	b.player = state.PlayerName
	b.ledger = ledger.New(state.History)
	b.zones = zone.RefreshAll(state.Zones, today, b.ids)

	if err := store.SaveState(b.kv, b.stateLocked()); err != nil {
		b.logger.Error("persist state", "error", err)
	}
	b.tracker.SetTotal(scoring.GlobalTotal(b.zones), "load")

	b.logger.Info("board loaded", "zones", len(b.zones), "history", b.ledger.Len(), "date", model.DateKey(today))
	return b.stateLocked()
}

// Refresh runs the daily refresh on every zone.
func (b *Board) Refresh() model.State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.zones = zone.RefreshAll(b.zones, b.today(), b.ids)
	b.saveZonesLocked()
	b.publishLocked("refresh")
	return b.stateLocked()
}

// State returns a deep copy of the current state.
func (b *Board) State() model.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Board) Zones() []model.Zone {
	return b.State().Zones
}

// Zone returns a copy of one zone.
func (b *Board) Zone(id string) (model.Zone, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findLocked(id)
	if i < 0 {
		return model.Zone{}, ErrZoneNotFound
	}
	return b.zones[i].Clone(), nil
}

// UpsertZone creates a zone when id is empty and edits the zone with that
// id otherwise. Either way today's tasks are regenerated and the board is
// refreshed, which clears them again if the cadence skips today. A draft
// that fails validation changes nothing.
func (b *Board) UpsertZone(id string, d zone.Draft) (model.Zone, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.today()
	action := "created"
	if id == "" {
		z, err := zone.New(d, today, b.ids)
		if err != nil {
			return model.Zone{}, err
		}
		b.zones = append(b.zones, z)
		id = z.ID
	} else {
		i := b.findLocked(id)
		if i < 0 {
			return model.Zone{}, ErrZoneNotFound
		}
		z, err := zone.Edit(b.zones[i], d, today, b.ids)
		if err != nil {
			return model.Zone{}, err
		}
		b.zones[i] = z
		action = "updated"
	}

	b.zones = zone.RefreshAll(b.zones, today, b.ids)
	b.saveZonesLocked()
	b.notify("zone", action, id, nil)
	b.publishLocked("zone_" + action)

	return b.zones[b.findLocked(id)].Clone(), nil
}

func (b *Board) DeleteZone(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.findLocked(id)
	if i < 0 {
		return ErrZoneNotFound
	}
	b.zones = slices.Delete(b.zones, i, i+1)
	b.saveZonesLocked()
	b.notify("zone", "deleted", id, nil)
	b.publishLocked("zone_deleted")
	return nil
}

// ResetZone throws away today's statuses for one zone and starts over.
func (b *Board) ResetZone(id string) (model.Zone, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.findLocked(id)
	if i < 0 {
		return model.Zone{}, ErrZoneNotFound
	}
	b.zones[i] = zone.Reset(b.zones[i], b.today(), b.ids)
	b.saveZonesLocked()
	b.notify("zone", "reset", id, nil)
	b.publishLocked("zone_reset")
	return b.zones[i].Clone(), nil
}

// SetTaskStatus records the status of one task instance. Templates are not
// touched.
func (b *Board) SetTaskStatus(zoneID, taskID string, status model.Status) (model.Zone, error) {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return model.Zone{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.findLocked(zoneID)
	if i < 0 {
		return model.Zone{}, ErrZoneNotFound
	}
	j := b.zones[i].FindTask(taskID)
	if j < 0 {
		return model.Zone{}, ErrTaskNotFound
	}

	b.zones[i].Tasks[j].Status = status
	b.saveZonesLocked()
	b.notify("task", "updated", taskID, map[string]any{
		"zone_id": zoneID,
		"status":  string(status),
	})
	b.publishLocked("task_" + string(status))
	return b.zones[i].Clone(), nil
}

// CloseDay snapshots every zone's score into the history. With no zones
// nothing is recorded and ok is false.
func (b *Board) CloseDay() (entry model.ScoreEntry, ok bool) {
	var snapshot model.State

	b.mu.Lock()
	entry, ok = ledger.CloseDay(b.zones, b.clock(), b.ids)
	if ok {
		b.ledger.Append(entry)
		b.saveHistoryLocked()
		b.notify("history", "appended", entry.ID, map[string]any{
			"total": entry.TotalScore,
		})
		snapshot = b.stateLocked()
	}
	b.mu.Unlock()

	if ok && b.onCloseDay != nil {
		b.onCloseDay(snapshot)
	}
	return entry, ok
}

// History returns the recorded entries, newest first.
func (b *Board) History() []model.ScoreEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Newest()
}

// SetPlayerName stores the trimmed display name and returns it.
func (b *Board) SetPlayerName(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.player = strings.TrimSpace(name)
	if err := store.SavePlayer(b.kv, b.player); err != nil {
		b.logger.Error("persist player", "error", err)
	}
	b.notify("player", "updated", "", map[string]any{"name": b.player})
	return b.player
}

func (b *Board) PlayerName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.player
}

// Score computes the live breakdown. Nothing is cached.
func (b *Board) Score() Score {
	b.mu.Lock()
	defer b.mu.Unlock()

	results := scoring.Results(b.zones)
	total := scoring.GlobalTotal(b.zones)
	return Score{
		Zones:    results,
		Total:    total,
		Progress: b.ladder.Standing(total),
	}
}

func (b *Board) stateLocked() model.State {
	s := model.State{
		Version:    model.StateVersion,
		PlayerName: b.player,
		Zones:      b.zones,
		History:    b.ledger.Entries(),
	}
	return s.Clone()
}

func (b *Board) findLocked(id string) int {
	for i := range b.zones {
		if b.zones[i].ID == id {
			return i
		}
	}
	return -1
}

// Write failures are logged and dropped; memory stays authoritative.
func (b *Board) saveZonesLocked() {
	if err := store.SaveZones(b.kv, b.zones); err != nil {
		b.logger.Error("persist zones", "error", err)
	}
}

func (b *Board) saveHistoryLocked() {
	if err := store.SaveHistory(b.kv, b.ledger.Entries()); err != nil {
		b.logger.Error("persist history", "error", err)
	}
}

// publishLocked pushes the new total through the tracker and announces it,
// plus a tier change when one happened.
func (b *Board) publishLocked(source string) {
	total := scoring.GlobalTotal(b.zones)
	u := b.tracker.SetTotal(total, source)

	b.notify("score", "updated", "", map[string]any{
		"total":    total,
		"level":    u.Tier.ID,
		"progress": u.Progress,
		"source":   source,
	})
	if u.Transition {
		b.logger.Info("tier changed", "tier", u.Tier.ID, "total", u.Total)
		b.notify("tier", "changed", u.Tier.ID, map[string]any{
			"name":  u.Tier.Name,
			"total": u.Total,
		})
	}
}

func (b *Board) notify(entity, action, id string, extra map[string]any) {
	if b.notifier != nil {
		b.notifier.Notify(entity, action, id, extra)
	}
}
