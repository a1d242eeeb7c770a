package scoring

import (
	"encoding/json"
	"testing"

	"github.com/dukerupert/zonetasks/internal/model"
)

func zoneWith(statuses ...model.Status) model.Zone {
	z := model.Zone{
		ID:              "zone-1",
		Name:            "Kitchen",
		PerTaskPoints:   10,
		CompletionBonus: 50,
		Penalty:         5,
		PenaltyMode:     model.PenaltySkipped,
		Tasks:           []model.TaskInstance{},
	}
	for i, s := range statuses {
		z.Tasks = append(z.Tasks, model.TaskInstance{ID: string(rune('a' + i)), Status: s})
	}
	return z
}

func TestNoTasksScoresZero(t *testing.T) {
	z := zoneWith()
	if got := ZoneScore(z); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
	z.Tasks = nil
	if got := ZoneScore(z); got != 0 {
		t.Errorf("score with nil tasks = %v, want 0", got)
	}
}

func TestPartialCompletionNoBonus(t *testing.T) {
	z := zoneWith(model.StatusCompleted, model.StatusCompleted, model.StatusPending)
	if got := ZoneScore(z); got != 20 {
		t.Errorf("score = %v, want 20", got)
	}
}

func TestFullCompletionBonus(t *testing.T) {
	z := zoneWith(model.StatusCompleted, model.StatusCompleted, model.StatusCompleted)
	r := Breakdown(z)
	if r.Score != 80 {
		t.Errorf("score = %v, want 80", r.Score)
	}
	if r.Base != 30 || r.Bonus != 50 || r.Penalty != 0 {
		t.Errorf("breakdown = %+v", r)
	}
	if r.Completed != 3 || r.Total != 3 {
		t.Errorf("completed/total = %d/%d, want 3/3", r.Completed, r.Total)
	}
}

func TestSkipPenalty(t *testing.T) {
	z := zoneWith(model.StatusSkipped, model.StatusSkipped)
	if got := ZoneScore(z); got != -10 {
		t.Errorf("score = %v, want -10", got)
	}
}

func TestSkippedBlocksBonus(t *testing.T) {
	z := zoneWith(model.StatusCompleted, model.StatusCompleted, model.StatusSkipped)
	r := Breakdown(z)
	if r.Bonus != 0 {
		t.Errorf("bonus = %v, want 0", r.Bonus)
	}
	if r.Score != 15 {
		t.Errorf("score = %v, want 15", r.Score)
	}
}

func TestIncompletePenaltyMode(t *testing.T) {
	z := zoneWith(model.StatusCompleted, model.StatusPending, model.StatusSkipped)
	z.PenaltyMode = model.PenaltyIncomplete
	r := Breakdown(z)
	if r.Penalty != 10 {
		t.Errorf("penalty = %v, want 10", r.Penalty)
	}
	if r.Score != 0 {
		t.Errorf("score = %v, want 0", r.Score)
	}
}

func TestGlobalTotal(t *testing.T) {
	a := zoneWith(model.StatusCompleted, model.StatusCompleted, model.StatusCompleted)
	b := zoneWith(model.StatusSkipped, model.StatusSkipped)
	b.ID = "zone-2"

	if got := GlobalTotal([]model.Zone{a, b}); got != 70 {
		t.Errorf("total = %v, want 70", got)
	}
	if got := GlobalTotal(nil); got != 0 {
		t.Errorf("total of no zones = %v, want 0", got)
	}
}

func TestResults(t *testing.T) {
	a := zoneWith(model.StatusCompleted)
	b := zoneWith()
	b.ID, b.Name = "zone-2", "Yard"

	results := Results([]model.Zone{a, b})
	if len(results) != 2 {
		t.Fatalf("len = %v, want 2", len(results))
	}
	if results[0].Score != 60 {
		t.Errorf("results[0].Score = %v, want 60", results[0].Score)
	}
	if results[1].ZoneID != "zone-2" || results[1].ZoneName != "Yard" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestFractionalRuleValues(t *testing.T) {
	var z model.Zone
	data := `{"id":"z","name":"Hall","perTaskPoints":2.5,"completionBonus":"0.4","penalty":0.25,
		"cadence":{"type":"daily"},"tasks":[{"id":"a","status":"completed"},{"id":"b","status":"completed"}]}`
	if err := json.Unmarshal([]byte(data), &z); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	r := Breakdown(z)
	if r.Base != 5 || r.Bonus != 0.4 || r.Score != 5.4 {
		t.Errorf("breakdown = %+v, want base 5 bonus 0.4 score 5.4", r)
	}

	z.Tasks[1].Status = model.StatusSkipped
	if got := ZoneScore(z); got != 2.25 {
		t.Errorf("score with one skip = %v, want 2.25", got)
	}
}
