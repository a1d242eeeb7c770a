package store

import (
	"testing"
	"time"

	"github.com/dukerupert/zonetasks/internal/idgen"
	"github.com/dukerupert/zonetasks/internal/model"
)

// monday is 2026-02-02.
var monday = time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

const legacyList = `[
	{"id":"a","text":"Water plants","completed":true,"recurrence":{"type":"none"}},
	{"id":"b","text":"Laundry","completed":true,"recurrence":{"type":"daily"},"lastOccurrenceDate":"2026-02-01"},
	{"id":"c","text":"Bins","completed":true,"recurrence":{"type":"weekly","days":[1]},"lastOccurrenceDate":"2026-02-02"},
	{"id":"d","text":"Vacuum","completed":false,"recurrence":{"type":"weekly","days":[3,"5"]}},
	{"id":"e","text":"   ","completed":false}
]`

func TestMigrateLegacy(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyLegacyTasks, legacyList)

	ok, err := MigrateLegacy(kv, monday, &idgen.Sequence{}, discardLogger())
	if err != nil || !ok {
		t.Fatalf("MigrateLegacy = %v, %v", ok, err)
	}
	if _, ok, _ := kv.Get(KeyLegacyTasks); ok {
		t.Error("legacy key not deleted")
	}

	state := LoadState(kv, discardLogger())
	if len(state.Zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(state.Zones))
	}
	z := state.Zones[0]
	if z.Name != LegacyZoneName || z.Cadence.Type != model.CadenceDaily || z.ActiveDate != "2026-02-02" {
		t.Errorf("zone = %+v", z)
	}
	if len(z.TaskTemplates) != 4 {
		t.Errorf("templates = %d, want 4", len(z.TaskTemplates))
	}

	// Vacuum is not due on Monday.
	want := map[string]model.Status{
		"Water plants": model.StatusCompleted,
		"Laundry":      model.StatusPending,
		"Bins":         model.StatusCompleted,
	}
	if len(z.Tasks) != len(want) {
		t.Fatalf("tasks = %+v, want %d", z.Tasks, len(want))
	}
	for _, task := range z.Tasks {
		if st, ok := want[task.Name]; !ok || st != task.Status {
			t.Errorf("task %q status = %q, want %q", task.Name, task.Status, st)
		}
	}
}

func TestMigrateLegacySkipsWhenZonesExist(t *testing.T) {
	kv := NewMemoryStore()
	SaveZones(kv, nil)
	kv.Set(KeyLegacyTasks, legacyList)

	ok, err := MigrateLegacy(kv, monday, &idgen.Sequence{}, discardLogger())
	if err != nil || ok {
		t.Fatalf("MigrateLegacy = %v, %v, want no import", ok, err)
	}
	if _, ok, _ := kv.Get(KeyLegacyTasks); !ok {
		t.Error("legacy key removed without import")
	}
}

func TestMigrateLegacyUnreadable(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyLegacyTasks, "not a list")

	ok, err := MigrateLegacy(kv, monday, &idgen.Sequence{}, discardLogger())
	if err != nil || ok {
		t.Fatalf("MigrateLegacy = %v, %v, want skipped", ok, err)
	}
	if _, ok, _ := kv.Get(KeyZones); ok {
		t.Error("zones written for unreadable legacy list")
	}
}

func TestMigrateLegacyRunsOnce(t *testing.T) {
	kv := NewMemoryStore()
	kv.Set(KeyLegacyTasks, legacyList)
	ids := &idgen.Sequence{}

	if ok, _ := MigrateLegacy(kv, monday, ids, discardLogger()); !ok {
		t.Fatal("first migration did not import")
	}
	if ok, _ := MigrateLegacy(kv, monday, ids, discardLogger()); ok {
		t.Error("second migration imported again")
	}
}
