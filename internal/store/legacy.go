package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
	"github.com/dukerupert/zonetasks/internal/recurrence"
)

// LegacyZoneName names the zone that receives imported single-list tasks.
const LegacyZoneName = "Tasks"

// legacyTask is one entry of the flat list kept under KeyLegacyTasks.
type legacyTask struct {
	ID                 string            `json:"id"`
	Text               string            `json:"text"`
	Name               string            `json:"name"`
	Completed          bool              `json:"completed"`
	Recurrence         *legacyRecurrence `json:"recurrence"`
	LastOccurrenceDate string            `json:"lastOccurrenceDate"`
}

// legacyRecurrence types are "none", "daily" or "weekly".
type legacyRecurrence struct {
	Type string            `json:"type"`
	Days []json.RawMessage `json:"days"`
}

func (r legacyRecurrence) cadence() model.Cadence {
	c := model.Cadence{Type: model.CadenceType(r.Type)}
	for _, d := range r.Days {
		c.Days = append(c.Days, model.CoerceWeekday(d))
	}
	return c.Normalized()
}

func (t legacyTask) label() string {
	if s := strings.TrimSpace(t.Text); s != "" {
		return s
	}
	return strings.TrimSpace(t.Name)
}

// recurring reports whether the task repeats. A weekly rule without days
// behaves like no rule at all, which is how the single-list screens treat it.
func (t legacyTask) recurring() bool {
	if t.Recurrence == nil {
		return false
	}
	switch t.Recurrence.Type {
	case string(model.CadenceDaily):
		return true
	case string(model.CadenceWeekly):
		return len(t.Recurrence.cadence().Days) > 0
	}
	return false
}

func (t legacyTask) dueOn(day time.Time) bool {
	if !t.recurring() {
		return true
	}
	return recurrence.ShouldGenerate(t.Recurrence.cadence(), day)
}

// MigrateLegacy imports the flat task list into a single daily zone when no
// zone collection has been saved yet. The legacy key is deleted only after
// the new zones are written. It reports whether an import happened.
func MigrateLegacy(kv KV, today time.Time, ids idgen.Generator, logger *slog.Logger) (bool, error) {
	if _, ok, err := kv.Get(KeyZones); err != nil || ok {
		return false, err
	}
	raw, ok, err := kv.Get(KeyLegacyTasks)
	if err != nil || !ok {
		return false, err
	}

	var tasks []legacyTask
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		logger.Warn("legacy task list is unreadable, skipping import", "key", KeyLegacyTasks, "error", err)
		return false, nil
	}

	z := importLegacy(tasks, today, ids)
	if err := SaveZones(kv, []model.Zone{z}); err != nil {
		return false, fmt.Errorf("save imported zone: %w", err)
	}
	if err := kv.Delete(KeyLegacyTasks); err != nil {
		return true, fmt.Errorf("delete legacy tasks: %w", err)
	}
	logger.Info("imported legacy tasks", "count", len(z.TaskTemplates), "zone_id", z.ID)
	return true, nil
}

func importLegacy(tasks []legacyTask, today time.Time, ids idgen.Generator) model.Zone {
	day := model.DateKey(today)
	z := model.Zone{
		ID:            ids.NewID("zone"),
		Name:          LegacyZoneName,
		PenaltyMode:   model.PenaltyIncomplete,
		Cadence:       model.Daily(),
		TaskTemplates: []model.TaskTemplate{},
		ActiveDate:    day,
		Tasks:         []model.TaskInstance{},
	}

	for _, t := range tasks {
		name := t.label()
		if name == "" {
			continue
		}
		tmpl := model.TaskTemplate{ID: t.ID, Name: name}
		if tmpl.ID == "" {
			tmpl.ID = ids.NewID("tmpl")
		}
		z.TaskTemplates = append(z.TaskTemplates, tmpl)

		if !t.dueOn(today) {
			continue
		}
		status := model.StatusPending
		if t.Completed && (!t.recurring() || t.LastOccurrenceDate == day) {
			status = model.StatusCompleted
		}
		z.Tasks = append(z.Tasks, model.TaskInstance{
			ID:         ids.NewID("task"),
			TemplateID: tmpl.ID,
			Name:       name,
			Status:     status,
		})
	}
	return z
}
