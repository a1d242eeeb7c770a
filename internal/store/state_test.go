package store

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/dukerupert/zonetasks/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadStateEmpty(t *testing.T) {
	got := LoadState(NewMemoryStore(), discardLogger())
	if !reflect.DeepEqual(got, model.NewState()) {
		t.Errorf("LoadState(empty) = %+v, want %+v", got, model.NewState())
	}
}

func TestLoadStateMalformedIsAbsent(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyZones, "{not json")
	kv.Set(KeyHistory, `{"oops": true}`)

	got := LoadState(kv, discardLogger())
	want := LoadState(NewMemoryStore(), discardLogger())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("malformed state = %+v, want %+v", got, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := NewMemoryStore()
	ts := time.Date(2026, 2, 2, 21, 0, 0, 0, time.UTC)

	state := model.State{
		Version:    model.StateVersion,
		PlayerName: "Sam",
		Zones: []model.Zone{{
			ID:              "zone-1",
			Name:            "Kitchen",
			PerTaskPoints:   10,
			CompletionBonus: 50,
			Penalty:         5,
			PenaltyMode:     model.PenaltySkipped,
			Cadence:         model.Weekly(time.Monday, time.Friday),
			TaskTemplates:   []model.TaskTemplate{{ID: "tmpl-2", Name: "Dishes"}},
			ActiveDate:      "2026-02-02",
			Tasks: []model.TaskInstance{
				{ID: "task-3", TemplateID: "tmpl-2", Name: "Dishes", Status: model.StatusSkipped},
			},
		}},
		History: []model.ScoreEntry{{
			ID:         "score-4",
			Timestamp:  ts,
			TotalScore: 5,
			Zones:      []model.ZoneResult{{ZoneID: "zone-1", ZoneName: "Kitchen", Total: 1, Penalty: 5, Score: -5}},
		}},
	}

	if err := SaveState(kv, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := LoadState(kv, discardLogger())
	if !reflect.DeepEqual(got, state) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, state)
	}
}

func TestLoadStateUnversionedSave(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyZones, `{"zones":[{"id":"z","name":"Hall","perTaskPoints":"7.6","cadence":{"type":"fortnightly"},"tasks":null}]}`)

	got := LoadState(kv, discardLogger())
	if len(got.Zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(got.Zones))
	}
	z := got.Zones[0]
	if z.PerTaskPoints != 7.6 {
		t.Errorf("PerTaskPoints = %v, want 7.6", z.PerTaskPoints)
	}
	if z.Cadence.Type != model.CadenceWeekly || len(z.Cadence.Days) != 0 {
		t.Errorf("Cadence = %+v, want weekly without days", z.Cadence)
	}
	if z.PenaltyMode != model.PenaltySkipped {
		t.Errorf("PenaltyMode = %q, want %q", z.PenaltyMode, model.PenaltySkipped)
	}
	if z.Tasks != nil {
		t.Errorf("Tasks = %v, want nil for an unrefreshed zone", z.Tasks)
	}
	if got.Version != model.StateVersion {
		t.Errorf("Version = %d, want %d", got.Version, model.StateVersion)
	}
}

func TestLoadStateBooleanTasks(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyZones, `{"zones":[{"id":"z","name":"Hall","cadence":{"type":"daily"},"activeDate":"2026-02-02",
		"tasks":[{"id":"a","text":"Sweep","completed":true},{"id":"b","name":"Mop","completed":false}]}]}`)

	got := LoadState(kv, discardLogger())
	tasks := got.Zones[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if tasks[0].Name != "Sweep" || tasks[0].Status != model.StatusCompleted {
		t.Errorf("tasks[0] = %+v", tasks[0])
	}
	if tasks[1].Status != model.StatusPending {
		t.Errorf("tasks[1].Status = %q, want pending", tasks[1].Status)
	}
}

func TestLoadStateBarePlayerName(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyPlayer, "  Robin ")

	if got := LoadState(kv, discardLogger()).PlayerName; got != "Robin" {
		t.Errorf("PlayerName = %q, want %q", got, "Robin")
	}
}

func TestSaveStateJoinsErrors(t *testing.T) {
	kv := NewMemoryStore()
	boom := errors.New("quota exceeded")
	kv.FailWrites = boom

	err := SaveState(kv, model.NewState())
	if !errors.Is(err, boom) {
		t.Errorf("SaveState err = %v, want %v", err, boom)
	}
}
