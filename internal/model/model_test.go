package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCoercePoints(t *testing.T) {
	tests := []struct {
		raw  string
		want Points
	}{
		{`10`, 10},
		{`2.5`, 2.5},
		{`-2.5`, -2.5},
		{`"15"`, 15},
		{`" 7.4 "`, 7.4},
		{`1e2`, 100},
		{`"NaN"`, 0},
		{`"ten"`, 0},
		{`null`, 0},
		{`true`, 0},
		{`{}`, 0},
		{``, 0},
	}
	for _, tt := range tests {
		if got := CoercePoints([]byte(tt.raw)); got != tt.want {
			t.Errorf("CoercePoints(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestZoneDecodeLoose(t *testing.T) {
	var z Zone
	data := `{"id":"z","name":"Hall","perTaskPoints":"12","completionBonus":null,"penalty":"x",
		"cadence":{"type":"weekly","days":[1,"3",9,1,-1,2.5]},"taskTemplates":null}`
	if err := json.Unmarshal([]byte(data), &z); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	z.Normalize()

	if z.PerTaskPoints != 12 || z.CompletionBonus != 0 || z.Penalty != 0 {
		t.Errorf("points = %v/%v/%v, want 12/0/0", z.PerTaskPoints, z.CompletionBonus, z.Penalty)
	}
	want := []time.Weekday{time.Monday, time.Wednesday}
	if len(z.Cadence.Days) != len(want) {
		t.Fatalf("days = %v, want %v", z.Cadence.Days, want)
	}
	for i := range want {
		if z.Cadence.Days[i] != want[i] {
			t.Errorf("days[%d] = %v, want %v", i, z.Cadence.Days[i], want[i])
		}
	}
	if z.TaskTemplates == nil {
		t.Error("TaskTemplates should default to empty")
	}
	if z.Tasks != nil {
		t.Error("Tasks should stay nil when absent")
	}
	if z.PenaltyMode != PenaltySkipped {
		t.Errorf("PenaltyMode = %q, want skipped", z.PenaltyMode)
	}
}

func TestCadenceUnknownType(t *testing.T) {
	tests := []struct {
		data string
		want Cadence
	}{
		{`{"type":"monthly","days":[1]}`, Weekly(time.Monday)},
		{`{"type":"fortnightly"}`, Weekly()},
		{`{"days":[3]}`, Daily()},
		{`{}`, Daily()},
	}
	for _, tt := range tests {
		var c Cadence
		if err := json.Unmarshal([]byte(tt.data), &c); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.data, err)
		}
		if c.Type != tt.want.Type || len(c.Days) != len(tt.want.Days) {
			t.Errorf("%s: cadence = %+v, want %+v", tt.data, c, tt.want)
			continue
		}
		for i := range c.Days {
			if c.Days[i] != tt.want.Days[i] {
				t.Errorf("%s: days = %v, want %v", tt.data, c.Days, tt.want.Days)
			}
		}
	}
}

func TestTaskInstanceStatusVariants(t *testing.T) {
	tests := []struct {
		data string
		want Status
		name string
	}{
		{`{"id":"a","name":"Dishes","status":"skipped"}`, StatusSkipped, "Dishes"},
		{`{"id":"a","text":"Sweep","completed":true}`, StatusCompleted, "Sweep"},
		{`{"id":"a","name":"Mop","completed":false}`, StatusPending, "Mop"},
		{`{"id":"a","name":"Mop","status":"done"}`, StatusPending, "Mop"},
	}
	for _, tt := range tests {
		var task TaskInstance
		if err := json.Unmarshal([]byte(tt.data), &task); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.data, err)
		}
		if task.Status != tt.want || task.Name != tt.name {
			t.Errorf("%s: got %+v, want status %q name %q", tt.data, task, tt.want, tt.name)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "completed", "skipped"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("Completed"); err == nil {
		t.Error("ParseStatus should be case-sensitive")
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := NewState()
	s.Zones = []Zone{{
		ID:            "z",
		Cadence:       Weekly(time.Monday),
		TaskTemplates: []TaskTemplate{{ID: "t", Name: "A"}},
		Tasks:         []TaskInstance{{ID: "i", Status: StatusPending}},
	}}
	s.History = []ScoreEntry{{ID: "h", Zones: []ZoneResult{{ZoneName: "Old"}}}}

	c := s.Clone()
	c.Zones[0].Tasks[0].Status = StatusCompleted
	c.Zones[0].Cadence.Days[0] = time.Friday
	c.History[0].Zones[0].ZoneName = "New"

	if s.Zones[0].Tasks[0].Status != StatusPending {
		t.Error("clone shares task instances")
	}
	if s.Zones[0].Cadence.Days[0] != time.Monday {
		t.Error("clone shares cadence days")
	}
	if s.History[0].Zones[0].ZoneName != "Old" {
		t.Error("clone shares history results")
	}
}
